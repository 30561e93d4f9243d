package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/threadline/internal/datasource"
	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/config"
	"github.com/vanderheijden86/threadline/pkg/debug"
	"github.com/vanderheijden86/threadline/pkg/loader"
	"github.com/vanderheijden86/threadline/pkg/ui"
	"github.com/vanderheijden86/threadline/pkg/version"
	"github.com/vanderheijden86/threadline/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dbPath := flag.String("db", "", "Path to a threads SQLite database")
	jsonlPath := flag.String("jsonl", "", "Path to a threads JSONL export")
	dataDir := flag.String("dir", "", "Data directory to discover sources in (default: .threadline, or THREADLINE_DIR)")
	mode := flag.String("mode", "", "Initial mode: inbox or archive (overrides config)")
	noWatch := flag.Bool("no-watch", false, "Disable file watching")
	debounceMS := flag.Int("debounce", 0, "Watch debounce in milliseconds (overrides config)")
	pollMS := flag.Int("poll", 0, "Watch poll interval in milliseconds (overrides config)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: tl [options]")
		fmt.Println("\nA terminal viewer for chat threads.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("tl %s\n", version.Version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "tl requires an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *mode != "" {
		cfg.UI.DefaultMode = *mode
	}
	if *debounceMS > 0 {
		cfg.Watch.DebounceMS = *debounceMS
	}
	if *pollMS > 0 {
		cfg.Watch.PollMS = *pollMS
	}

	store, source, err := openStore(cfg, *dbPath, *jsonlPath, *dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	debug.Log("using source: %s", source)

	m := ui.NewModel(store, cfg, source.String())

	var w *watcher.Watcher
	if !*noWatch {
		w, err = watcher.New(source.Path,
			watcher.WithDebounceDuration(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond),
			watcher.WithPollInterval(time.Duration(cfg.Watch.PollMS)*time.Millisecond),
			watcher.WithForcePoll(cfg.Watch.ForcePoll),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", source.Path, err)
		} else if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: watcher failed to start: %v\n", err)
		} else {
			defer w.Stop()
			m = m.SetChangeChannel(w.Changed())
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore resolves the thread source: explicit --db/--jsonl first, then
// discovery in the data directory.
func openStore(cfg config.Config, dbPath, jsonlPath, dirFlag string) (chatlist.Store, datasource.DataSource, error) {
	switch {
	case dbPath != "":
		store, err := datasource.OpenSQLite(dbPath)
		if err != nil {
			return nil, datasource.DataSource{}, err
		}
		info, _ := os.Stat(dbPath)
		src := datasource.DataSource{Type: datasource.SourceTypeSQLite, Path: dbPath, Valid: true}
		if info != nil {
			src.ModTime = info.ModTime()
			src.Size = info.Size()
		}
		return store, src, nil

	case jsonlPath != "":
		src := datasource.DataSource{Type: datasource.SourceTypeJSONL, Path: jsonlPath, Valid: true}
		if info, err := os.Stat(jsonlPath); err == nil {
			src.ModTime = info.ModTime()
			src.Size = info.Size()
		}
		return datasource.NewJSONLStore(jsonlPath), src, nil

	default:
		dir := dirFlag
		if dir == "" {
			dir = cfg.DataDir
		}
		if dir == "" {
			var err error
			dir, err = loader.GetDataDir("")
			if err != nil {
				return nil, datasource.DataSource{}, err
			}
		}
		return datasource.OpenBest(context.Background(), dir)
	}
}
