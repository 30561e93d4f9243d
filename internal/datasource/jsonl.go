package datasource

import (
	"errors"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/loader"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// ErrReadOnly is returned by mutation methods on sources that cannot be
// written, such as JSONL exports.
var ErrReadOnly = errors.New("source is read-only")

// JSONLStore exposes a JSONL export behind the snapshot-read contract.
// The whole file is parsed once per Read, which makes the snapshot
// trivially consistent.
type JSONLStore struct {
	path string
}

// NewJSONLStore creates a store over the given JSONL file.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the backing file path.
func (s *JSONLStore) Path() string {
	return s.path
}

// Read parses the file and runs fn over the static snapshot.
func (s *JSONLStore) Read(fn func(chatlist.ThreadReader) error) error {
	threads, err := loader.LoadThreadsFromFile(s.path)
	if err != nil {
		return err
	}
	return fn(staticReader(threads))
}

// SetPinned is unsupported for JSONL exports.
func (s *JSONLStore) SetPinned(string, bool) error { return ErrReadOnly }

// SetArchived is unsupported for JSONL exports.
func (s *JSONLStore) SetArchived(string, bool) error { return ErrReadOnly }

// MarkRead is unsupported for JSONL exports.
func (s *JSONLStore) MarkRead(string) error { return ErrReadOnly }

// staticReader adapts an in-memory slice to chatlist.ThreadReader.
type staticReader []model.Thread

// Threads returns the parsed snapshot.
func (r staticReader) Threads() ([]model.Thread, error) {
	return []model.Thread(r), nil
}

// Mutator is implemented by stores that support writes. Callers check for
// it before offering mutating actions.
type Mutator interface {
	SetPinned(id string, pinned bool) error
	SetArchived(id string, archived bool) error
	MarkRead(id string) error
}
