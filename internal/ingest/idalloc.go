package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// IDAllocator hands out monotonically increasing record ids and persists the
// counter to a side file after every change. Single-process use only; no
// multi-process locking.
type IDAllocator struct {
	path string
	next int64
	mu   sync.Mutex
}

// NewIDAllocator opens (or initializes) the counter file at path.
func NewIDAllocator(path string) (*IDAllocator, error) {
	a := &IDAllocator{path: path, next: 1}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		value, parseErr := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("corrupt id counter file %s: %w", path, parseErr)
		}
		a.next = value
	case os.IsNotExist(err):
		// First run; counter starts at 1.
	default:
		return nil, fmt.Errorf("failed to read id counter: %w", err)
	}

	return a, nil
}

// Allocate returns the next id and persists the updated counter immediately.
func (a *IDAllocator) Allocate() (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	if err := a.persist(); err != nil {
		a.next = id
		return 0, err
	}
	return id, nil
}

// Reconcile bumps the counter past maxObserved so that ids carried by an
// imported batch can never collide with future allocations. A smaller
// maxObserved is a no-op.
func (a *IDAllocator) Reconcile(maxObserved int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if maxObserved+1 <= a.next {
		return nil
	}
	previous := a.next
	a.next = maxObserved + 1
	if err := a.persist(); err != nil {
		a.next = previous
		return err
	}
	return nil
}

func (a *IDAllocator) persist() error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0750); err != nil {
		return fmt.Errorf("failed to create counter directory: %w", err)
	}
	if err := os.WriteFile(a.path, []byte(strconv.FormatInt(a.next, 10)), 0600); err != nil {
		return fmt.Errorf("failed to persist id counter: %w", err)
	}
	return nil
}
