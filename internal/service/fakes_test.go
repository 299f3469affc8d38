package service

import (
	"errors"
	"strings"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/adapter"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
)

var (
	errPutFailed    = errors.New("disk full")
	errDeleteFailed = errors.New("read-only file system")
)

// memoryStore is a map-backed domain.ProgressStore
type memoryStore struct {
	data    map[string][]byte
	failPut    bool
	failDelete bool
	puts       int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryStore) Put(key string, value []byte) error {
	if m.failPut {
		return errPutFailed
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Delete(key string) error {
	if m.failDelete {
		return errDeleteFailed
	}
	delete(m.data, key)
	return nil
}

func (m *memoryStore) Close() error { return nil }

// prefixStore adds bulk deletion to memoryStore
type prefixStore struct {
	*memoryStore
}

func (p prefixStore) DeletePrefix(prefix string) error {
	for k := range p.data {
		if strings.HasPrefix(k, prefix) {
			delete(p.data, k)
		}
	}
	return nil
}

func newTestProgressService(store domain.ProgressStore) *ProgressService {
	s := NewProgressService(store, adapter.NullLogger())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

var testLecture = domain.Lecture{ID: "intro-to-react", Title: "Introduction to React", Duration: 100}
