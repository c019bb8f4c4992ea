package storage

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Client for tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Call counters, inspected by tests.
	MoveCount   int
	DeleteCount int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put seeds an object directly, bypassing the temp area.
func (m *MemoryStore) Put(folder, dir, filename string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path.Join(folder, dir, filename)] = data
}

func (m *MemoryStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path.Join(folder, TempDir, filename)] = data
	return nil
}

func (m *MemoryStore) List(ctx context.Context, folder, dir string) ([]string, error) {
	if err := ValidateFolder(folder); err != nil {
		return nil, err
	}
	prefix := path.Join(folder, dir) + "/"

	m.mu.Lock()
	defer m.mu.Unlock()
	var files []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			files = append(files, path.Base(key))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemoryStore) Move(ctx context.Context, folder string, files []string, dest string) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, file := range files {
		src := path.Join(folder, TempDir, file)
		if data, ok := m.objects[src]; ok {
			m.objects[path.Join(folder, dest, file)] = data
			delete(m.objects, src)
		}
		m.MoveCount++
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, folder, dir string, files []string) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, file := range files {
		delete(m.objects, path.Join(folder, dir, file))
		m.DeleteCount++
	}
	return nil
}

func (m *MemoryStore) DeleteDir(ctx context.Context, folder, dir string) error {
	files, err := m.List(ctx, folder, dir)
	if err != nil {
		return err
	}
	return m.Delete(ctx, folder, dir, files)
}
