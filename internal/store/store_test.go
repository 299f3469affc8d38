package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
)

// backends returns a fresh instance of every store implementation
func backends() map[string]func(t *testing.T) domain.ProgressStore {
	return map[string]func(t *testing.T) domain.ProgressStore{
		"memory": func(t *testing.T) domain.ProgressStore {
			s, err := NewBoltStore("")
			if err != nil {
				t.Fatalf("memory store: %v", err)
			}
			return s
		},
		"bolt": func(t *testing.T) domain.ProgressStore {
			s, err := NewBoltStore(t.TempDir())
			if err != nil {
				t.Fatalf("bolt store: %v", err)
			}
			return s
		},
		"sqlite": func(t *testing.T) domain.ProgressStore {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "progress.sqlite"))
			if err != nil {
				t.Fatalf("sqlite store: %v", err)
			}
			return s
		},
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			if _, ok := s.Get("video-progress-a"); ok {
				t.Fatal("expected miss on empty store")
			}

			if err := s.Put("video-progress-a", []byte(`{"intervals":[[0,10]]}`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, ok := s.Get("video-progress-a")
			if !ok {
				t.Fatal("expected hit after put")
			}
			if string(got) != `{"intervals":[[0,10]]}` {
				t.Fatalf("unexpected value %q", got)
			}

			if err := s.Put("video-progress-a", []byte("v2")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if got, _ := s.Get("video-progress-a"); string(got) != "v2" {
				t.Fatalf("expected overwritten value, got %q", got)
			}

			if err := s.Delete("video-progress-a"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok := s.Get("video-progress-a"); ok {
				t.Fatal("expected miss after delete")
			}
			if err := s.Delete("video-progress-missing"); err != nil {
				t.Fatalf("deleting a missing key should succeed, got %v", err)
			}
		})
	}
}

func TestStore_ValuesAreNotAliased(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			value := []byte("abc")
			if err := s.Put("k", value); err != nil {
				t.Fatalf("put: %v", err)
			}
			value[0] = 'z'

			got, _ := s.Get("k")
			got[1] = 'z'

			again, _ := s.Get("k")
			if string(again) != "abc" {
				t.Fatalf("stored value was mutated through an alias: %q", again)
			}
		})
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	type prefixDeleter interface {
		DeletePrefix(prefix string) error
	}

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			for _, k := range []string{"video-progress-a", "video-progress-b", "video-progress_c", "other"} {
				if err := s.Put(k, []byte("x")); err != nil {
					t.Fatalf("put %s: %v", k, err)
				}
			}

			if err := s.(prefixDeleter).DeletePrefix("video-progress-"); err != nil {
				t.Fatalf("delete prefix: %v", err)
			}

			for k, want := range map[string]bool{
				"video-progress-a": false,
				"video-progress-b": false,
				"video-progress_c": true,
				"other":            true,
			} {
				if _, ok := s.Get(k); ok != want {
					t.Errorf("key %s: expected present=%v", k, want)
				}
			}
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBoltStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put("video-progress-a", []byte("saved")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = NewBoltStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok := s.Get("video-progress-a")
	if !ok || string(got) != "saved" {
		t.Fatalf("expected persisted value, got %q (ok=%v)", got, ok)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sqlite")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put("video-progress-a", []byte("saved")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok := s.Get("video-progress-a")
	if !ok || string(got) != "saved" {
		t.Fatalf("expected persisted value, got %q (ok=%v)", got, ok)
	}
}

func TestStore_ClosedRejectsWrites(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			if err := s.Put("k", []byte("v")); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			if err := s.Put("k", []byte("v")); !errors.Is(err, domain.ErrStoreClosed) {
				t.Fatalf("put: expected ErrStoreClosed, got %v", err)
			}
			if err := s.Delete("k"); !errors.Is(err, domain.ErrStoreClosed) {
				t.Fatalf("delete: expected ErrStoreClosed, got %v", err)
			}
			if pd, ok := s.(interface{ DeletePrefix(string) error }); ok {
				if err := pd.DeletePrefix("k"); !errors.Is(err, domain.ErrStoreClosed) {
					t.Fatalf("delete prefix: expected ErrStoreClosed, got %v", err)
				}
			}
			if _, ok := s.Get("k"); ok {
				t.Fatal("expected miss on closed store")
			}
			if err := s.Close(); err != nil {
				t.Fatalf("second close: %v", err)
			}
		})
	}
}

func TestOpen_SelectsDriver(t *testing.T) {
	tests := []struct {
		opts    Options
		want    string
		wantErr error
	}{
		{Options{}, "*store.BoltStore", nil},
		{Options{Driver: "bolt", Dir: t.TempDir()}, "*store.BoltStore", nil},
		{Options{Driver: "SQLite", Dir: t.TempDir()}, "*store.SQLiteStore", nil},
		{Options{Driver: "sqlite"}, "*store.BoltStore", nil},
		{Options{Driver: "postgres"}, "", domain.ErrUnknownDriver},
	}

	for _, tt := range tests {
		s, err := Open(tt.opts)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%+v: expected %v, got %v", tt.opts, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", tt.opts, err)
		}
		got := typeName(s)
		s.Close()
		if got != tt.want {
			t.Fatalf("%+v: expected %s, got %s", tt.opts, tt.want, got)
		}
	}
}

func typeName(s domain.ProgressStore) string {
	switch s.(type) {
	case *BoltStore:
		return "*store.BoltStore"
	case *SQLiteStore:
		return "*store.SQLiteStore"
	}
	return "unknown"
}
