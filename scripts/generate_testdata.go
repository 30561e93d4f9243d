//go:build ignore

// generate_testdata.go creates standard thread datasets for manual testing
// and benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	tests/testdata/small/threads.jsonl   (50 threads)
//	tests/testdata/medium/threads.jsonl  (500 threads)
//	tests/testdata/large/threads.jsonl   (5000 threads)
//
// Point the viewer at one with: THREADLINE_DIR=tests/testdata/medium tl
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/threadline/pkg/testutil"
)

type datasetSpec struct {
	name string
	size int
}

var datasets = []datasetSpec{
	{"small", 50},
	{"medium", 500},
	{"large", 5000},
}

func main() {
	for _, ds := range datasets {
		dir := filepath.Join("tests", "testdata", ds.name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", dir, err)
			os.Exit(1)
		}
		path := filepath.Join(dir, "threads.jsonl")
		if err := writeDataset(path, ds.size); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d threads)\n", path, ds.size)
	}
}

func writeDataset(path string, size int) error {
	opts := testutil.DefaultGeneratorOptions()
	opts.Count = size
	opts.Seed = int64(size)
	threads := testutil.GenerateThreads(opts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, t := range threads {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return w.Flush()
}
