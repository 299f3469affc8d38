package domain

// ProgressStore is the persistence boundary for saved progress.
// Values are opaque bytes; encoding belongs to the caller.
type ProgressStore interface {
	// Get returns the value stored under key and whether it was present
	Get(key string) ([]byte, bool)

	// Put replaces the value stored under key
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	Close() error
}
