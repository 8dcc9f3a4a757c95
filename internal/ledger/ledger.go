// Package ledger persists the identifiers of documents that completed a full
// publish cycle. The backing file holds one identifier per line and is only
// ever appended to.
package ledger

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lblod/republisher/pkg/constants"
	"github.com/lblod/republisher/pkg/errors"
)

// Ledger is a file-backed, append-only set of document identifiers.
type Ledger struct {
	mu    sync.RWMutex
	path  string
	file  *os.File
	seen  map[string]struct{}
	order []string

	unterminated bool
}

// Open loads the ledger at path. A missing file is an empty ledger; the file
// is created on the first Record.
func Open(path string) (*Ledger, error) {
	l := &Ledger{path: path, seen: make(map[string]struct{})}

	data, err := os.ReadFile(path) //nolint:gosec
	if stderrors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		l.add(strings.TrimSpace(line))
	}
	// An interrupted write can leave the last line unterminated.
	l.unterminated = len(data) > 0 && data[len(data)-1] != '\n'
	return l, nil
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// Seen reports whether docID has been recorded.
func (l *Ledger) Seen(docID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.seen[docID]
	return ok
}

// Record appends docID to the ledger and syncs the file. Recording an
// identifier that is already present does nothing.
func (l *Ledger) Record(docID string) error {
	docID = strings.TrimSpace(docID)
	if docID == "" || strings.ContainsAny(docID, "\r\n") {
		return errors.NewValidationError("document_id", docID, "must be a non-empty single line")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[docID]; ok {
		return nil
	}

	if l.file == nil {
		if dir := filepath.Dir(l.path); dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("mkdir", dir, err)
			}
		}
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePermissions) //nolint:gosec
		if err != nil {
			return errors.WrapIO("open", l.path, err)
		}
		l.file = f
	}

	line := docID + "\n"
	if l.unterminated {
		line = "\n" + line
	}
	if _, err := l.file.WriteString(line); err != nil {
		return errors.WrapIO("write", l.path, err)
	}
	if err := l.file.Sync(); err != nil {
		return errors.WrapIO("sync", l.path, err)
	}
	l.unterminated = false
	l.add(docID)
	return nil
}

// List returns the recorded identifiers in the order they were recorded.
func (l *Ledger) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of recorded identifiers.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// Close releases the append handle, if one was opened.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return errors.WrapIO("close", l.path, err)
}

func (l *Ledger) add(docID string) {
	if docID == "" {
		return
	}
	if _, ok := l.seen[docID]; ok {
		return
	}
	l.seen[docID] = struct{}{}
	l.order = append(l.order, docID)
}
