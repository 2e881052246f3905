package storage

// Interface defines the database storage API.
// Values passed to and returned from a storage are never shared with it.
type Interface interface {
	// Retrieve
	Get(key string) ([]byte, error)
	Exists(key string) (bool, error)
	Keys(prefix string) ([]string, error)

	// Modify
	Put(key string, data []byte) error
	Delete(key string) error

	Shutdown() error
}

// Maintainer is implemented by storages that need periodic cleanup.
type Maintainer interface {
	Maintain() error
}
