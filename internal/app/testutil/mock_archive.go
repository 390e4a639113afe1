package testutil

import (
	"context"
	"fmt"
	"sync"
)

// MockArchive is an in-memory storage.Archive
type MockArchive struct {
	mu      sync.Mutex
	Err     error
	Objects map[string][]byte
}

func NewMockArchive() *MockArchive {
	return &MockArchive{Objects: make(map[string][]byte)}
}

func (a *MockArchive) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return "", a.Err
	}

	url := fmt.Sprintf("http://archive.test/audio/%d-%s", len(a.Objects)+1, filename)
	a.Objects[url] = append([]byte(nil), data...)
	return url, nil
}
