package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSink collects a match's history in memory and writes it to a single
// text file. The file is replaced atomically after every hand, so readers
// see either the previous or the current history but never a partial one.
type FileSink struct {
	path string
	mu   sync.Mutex
	buf  strings.Builder
}

// NewFileSink returns a sink writing to path, creating its directory.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileSink{path: path}, nil
}

// Path returns the file being written.
func (f *FileSink) Path() string {
	return f.path
}

func (f *FileSink) WriteHand(_ context.Context, h Hand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buf.WriteString(strings.TrimSpace(h.Text))
	f.buf.WriteByte('\n')
	return writeAtomic(f.path, []byte(f.buf.String()), 0o644)
}

func (f *FileSink) WriteSummary(_ context.Context, s Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(&f.buf, "Match id %s\n", s.MatchID)
	fmt.Fprintf(&f.buf, "Match game %s\n", s.Game)
	fmt.Fprintf(&f.buf, "Match hands %d\n", s.Hands)
	for _, st := range s.Standings {
		fmt.Fprintf(&f.buf, "%s finish %d stack %d gainloss %d timeouts %d\n",
			st.Name, st.Finish, st.Stack, st.GainLoss, st.Timeouts)
	}
	if s.Winner != "" {
		fmt.Fprintf(&f.buf, "Match winner %s\n", s.Winner)
	}
	return writeAtomic(f.path, []byte(f.buf.String()), 0o644)
}

func (f *FileSink) Close() error {
	return nil
}

// writeAtomic writes data to a temporary file beside filename and renames
// it into place.
func writeAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
