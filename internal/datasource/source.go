// Package datasource provides multi-source detection, validation and
// snapshot access for thread data. It discovers SQLite databases and JSONL
// exports, selects the freshest valid source, and exposes each behind the
// chatlist.Store snapshot-read contract.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/loader"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (threads.db).
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSONL is a JSONL export.
	SourceTypeJSONL SourceType = "jsonl"
)

// Priority values for source types (higher = more authoritative).
const (
	PrioritySQLite = 100
	PriorityJSONL  = 50
)

// ErrNoSources is returned when discovery finds nothing usable.
var ErrNoSources = errors.New("no valid thread sources discovered")

// DataSource represents a potential source of thread data.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	Size     int64      `json:"size"`
	// Valid indicates whether the source passed validation.
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed.
	ValidationError string `json:"validation_error,omitempty"`
	// ThreadCount is set during validation.
	ThreadCount int `json:"thread_count"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, threads=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.ThreadCount, status)
}

// DiscoverSources finds potential thread sources in the data directory:
// threads.db plus any JSONL candidates the loader recognizes.
func DiscoverSources(dataDir string) ([]DataSource, error) {
	var sources []DataSource

	dbPath := filepath.Join(dataDir, "threads.db")
	if info, err := os.Stat(dbPath); err == nil {
		sources = append(sources, DataSource{
			Type:     SourceTypeSQLite,
			Path:     dbPath,
			Priority: PrioritySQLite,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if len(sources) == 0 {
			return nil, fmt.Errorf("failed to read data directory: %w", err)
		}
		return sources, nil
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		name := e.Name()
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") || strings.Contains(name, ".merge") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, DataSource{
			Type:     SourceTypeJSONL,
			Path:     filepath.Join(dataDir, name),
			Priority: PriorityJSONL,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	return sources, nil
}

// ValidateSources checks every source concurrently, filling Valid,
// ValidationError and ThreadCount in place.
func ValidateSources(ctx context.Context, sources []DataSource) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			validateSource(&sources[i])
			return nil
		})
	}
	return g.Wait()
}

func validateSource(s *DataSource) {
	switch s.Type {
	case SourceTypeSQLite:
		store, err := OpenSQLite(s.Path)
		if err != nil {
			s.ValidationError = err.Error()
			return
		}
		defer store.Close()
		count, err := store.CountThreads()
		if err != nil {
			s.ValidationError = err.Error()
			return
		}
		s.ThreadCount = count
		s.Valid = true
	case SourceTypeJSONL:
		count, err := loader.CountThreads(s.Path)
		if err != nil {
			s.ValidationError = err.Error()
			return
		}
		s.ThreadCount = count
		s.Valid = true
	default:
		s.ValidationError = fmt.Sprintf("unknown source type: %s", s.Type)
	}
}

// SelectBestSource picks the freshest valid source, preferring higher
// priority (SQLite over JSONL) when modification times are equal.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	valid := make([]DataSource, 0, len(sources))
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return DataSource{}, ErrNoSources
	}
	sort.Slice(valid, func(i, j int) bool {
		if valid[i].ModTime.Equal(valid[j].ModTime) {
			return valid[i].Priority > valid[j].Priority
		}
		return valid[i].ModTime.After(valid[j].ModTime)
	})
	return valid[0], nil
}

// Open returns a snapshot store for the given source.
func Open(source DataSource) (chatlist.Store, error) {
	switch source.Type {
	case SourceTypeSQLite:
		return OpenSQLite(source.Path)
	case SourceTypeJSONL:
		return NewJSONLStore(source.Path), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", source.Type)
	}
}

// OpenBest discovers, validates and opens the best source in dataDir.
func OpenBest(ctx context.Context, dataDir string) (chatlist.Store, DataSource, error) {
	sources, err := DiscoverSources(dataDir)
	if err != nil {
		return nil, DataSource{}, err
	}
	if err := ValidateSources(ctx, sources); err != nil {
		return nil, DataSource{}, err
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, DataSource{}, err
	}
	store, err := Open(best)
	if err != nil {
		return nil, DataSource{}, err
	}
	return store, best, nil
}
