package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bluele/gcache"
	"github.com/tevino/abool"
	"golang.org/x/sync/singleflight"

	"github.com/safing/tabletext/crypto/hash"
	"github.com/safing/tabletext/database/storage"
	"github.com/safing/tabletext/formats/dsd"
	"github.com/safing/tabletext/info"
	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/metrics"
	"github.com/safing/tabletext/serializers/structured"
	"github.com/safing/tabletext/table"
)

// Options configure a database.
type Options struct {
	// CacheSize is the number of snapshots held in memory. Zero disables the cache.
	CacheSize int
	// Format is the serialization format of stored table documents.
	Format dsd.SerializationFormat
	// Compress enables gzip compression of stored table documents.
	Compress bool
}

// DefaultOptions returns the options used by Open.
func DefaultOptions() Options {
	return Options{
		CacheSize: 64,
		Format:    dsd.MsgPack,
	}
}

// Database stores table snapshots. It is safe for concurrent use.
type Database struct {
	name    string
	storage storage.Interface
	options Options

	cache gcache.Cache
	loads singleflight.Group

	// generation counts writes. Loads only cache what they read if no
	// write happened in between.
	generationLock sync.Mutex
	generation     uint64

	shuttingDown *abool.AtomicBool
}

// Open opens the database with the given name in a storage of the given type at location.
func Open(name, storageType, location string) (*Database, error) {
	return OpenWithOptions(name, storageType, location, DefaultOptions())
}

// OpenWithOptions opens the database with the given name and options.
func OpenWithOptions(name, storageType, location string, opts Options) (*Database, error) {
	if _, ok := opts.Format.ValidateSerializationFormat(); !ok || opts.Format == dsd.RAW {
		return nil, fmt.Errorf("database: %w: %s", dsd.ErrIncompatibleFormat, opts.Format)
	}

	s, err := storage.StartDatabase(name, storageType, location)
	if err != nil {
		return nil, fmt.Errorf("database: failed to start %s storage for %s: %w", storageType, name, err)
	}

	db := &Database{
		name:         name,
		storage:      s,
		options:      opts,
		shuttingDown: abool.New(),
	}
	if opts.CacheSize > 0 {
		db.cache = gcache.New(opts.CacheSize).LRU().Build()
	}

	log.Debugf("database: opened %s (%s) at %s", name, storageType, location)
	return db, nil
}

// Name returns the name of the database.
func (db *Database) Name() string {
	return db.name
}

// SaveTable stores the records of the table under key. The ID and creation
// time of an existing entry are kept.
func (db *Database) SaveTable(key string, t *table.Table) (*Meta, error) {
	if db.shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}
	if err := storage.ValidKey(key); err != nil {
		return nil, err
	}
	metrics.Counter("database_ops_total", "op", "save").Inc()

	// Invalidate before the write, so a failed write cannot leave a stale
	// snapshot, and after it, to discard loads that read the old data.
	db.invalidate(key)
	defer db.invalidate(key)

	var meta *Meta
	existing, err := db.getSnapshot(key)
	switch {
	case err == nil:
		meta = existing.meta.update()
	case errors.Is(err, ErrNotFound):
		meta, err = newMeta()
		if err != nil {
			return nil, fmt.Errorf("database: failed to create id: %w", err)
		}
	default:
		// Overwrite unreadable entries.
		log.Warningf("database: replacing unreadable entry %s in %s: %s", key, db.name, err)
		meta, err = newMeta()
		if err != nil {
			return nil, fmt.Errorf("database: failed to create id: %w", err)
		}
	}

	document, err := structured.Marshal(t, structured.Options{
		Format:   db.options.Format,
		Compress: db.options.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("database: failed to pack table %s: %w", key, err)
	}

	format, _ := db.options.Format.ValidateSerializationFormat()
	meta.Format = format.String()
	meta.Records = t.Size()
	sum, err := hash.Sum(checksumAlgorithm, document)
	if err != nil {
		return nil, fmt.Errorf("database: failed to hash table %s: %w", key, err)
	}
	meta.Checksum = sum.Safe64()
	if tt := t.TableType(); tt != nil {
		meta.Type = tt.Name
	}

	snap := &snapshot{
		meta:     meta,
		document: document,
	}
	data, err := snap.marshal()
	if err != nil {
		return nil, fmt.Errorf("database: failed to pack snapshot %s: %w", key, err)
	}

	if err := db.storage.Put(key, data); err != nil {
		return nil, fmt.Errorf("database: failed to write %s: %w", key, err)
	}

	copied := *meta
	return &copied, nil
}

// LoadTable clears the table and fills it with the records stored under key.
func (db *Database) LoadTable(key string, t *table.Table) (*Meta, error) {
	if db.shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}
	metrics.Counter("database_ops_total", "op", "load").Inc()

	snap, err := db.getSnapshot(key)
	if err != nil {
		return nil, err
	}

	t.Clear()
	if _, err := structured.Unmarshal(snap.document, t); err != nil {
		t.Clear()
		return nil, fmt.Errorf("database: failed to load table %s: %w", key, err)
	}

	copied := *snap.meta
	return &copied, nil
}

// Meta returns the meta data of the table stored under key.
func (db *Database) Meta(key string) (*Meta, error) {
	if db.shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}

	snap, err := db.getSnapshot(key)
	if err != nil {
		return nil, err
	}
	copied := *snap.meta
	return &copied, nil
}

// Exists returns whether a table is stored under key.
func (db *Database) Exists(key string) (bool, error) {
	if db.shuttingDown.IsSet() {
		return false, ErrShuttingDown
	}
	if db.cache != nil && db.cache.Has(key) {
		return true, nil
	}
	return db.storage.Exists(key)
}

// Delete removes the table stored under key. Deleting a missing entry is not an error.
func (db *Database) Delete(key string) error {
	if db.shuttingDown.IsSet() {
		return ErrShuttingDown
	}
	metrics.Counter("database_ops_total", "op", "delete").Inc()

	db.invalidate(key)
	defer db.invalidate(key)
	if err := db.storage.Delete(key); err != nil {
		return fmt.Errorf("database: failed to delete %s: %w", key, err)
	}
	return nil
}

// List returns the keys of all stored tables with the given prefix in order.
func (db *Database) List(prefix string) ([]string, error) {
	if db.shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}
	metrics.Counter("database_ops_total", "op", "list").Inc()

	keys, err := db.storage.Keys(prefix)
	if err != nil {
		return nil, fmt.Errorf("database: failed to list %s: %w", db.name, err)
	}
	return keys, nil
}

// Maintain runs maintenance on storages that support it.
func (db *Database) Maintain() error {
	if db.shuttingDown.IsSet() {
		return ErrShuttingDown
	}
	if maintainer, ok := db.storage.(storage.Maintainer); ok {
		return maintainer.Maintain()
	}
	return nil
}

// Close shuts down the database. Later calls return ErrShuttingDown.
func (db *Database) Close() error {
	if !db.shuttingDown.SetToIf(false, true) {
		return ErrShuttingDown
	}
	if db.cache != nil {
		db.cache.Purge()
	}

	log.Debugf("database: closing %s", db.name)
	return db.storage.Shutdown()
}

// getSnapshot returns the snapshot from the cache or storage. Concurrent
// reads of the same key are served by a single storage read.
func (db *Database) getSnapshot(key string) (*snapshot, error) {
	if db.cache != nil {
		if v, err := db.cache.Get(key); err == nil {
			return v.(*snapshot), nil //nolint:forcetypeassert
		}
	}

	v, err, _ := db.loads.Do(key, func() (interface{}, error) {
		generation := db.currentGeneration()
		data, err := db.storage.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("database: failed to read %s: %w", key, err)
		}

		snap, err := unmarshalSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("database: failed to read %s: %w", key, err)
		}
		if info.Newer(snap.meta.Writer) {
			log.Warningf("database: %s in %s was written by the newer version %s", key, db.name, snap.meta.Writer)
		}
		db.cacheSnapshot(key, snap, generation)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil //nolint:forcetypeassert
}

func (db *Database) currentGeneration() uint64 {
	db.generationLock.Lock()
	defer db.generationLock.Unlock()
	return db.generation
}

// cacheSnapshot caches a snapshot that was read at the given generation,
// unless a write happened since.
func (db *Database) cacheSnapshot(key string, snap *snapshot, generation uint64) {
	if db.cache == nil {
		return
	}

	db.generationLock.Lock()
	defer db.generationLock.Unlock()

	if generation != db.generation {
		return
	}
	if err := db.cache.Set(key, snap); err != nil {
		log.Warningf("database: failed to cache %s: %s", key, err)
	}
}

// invalidate drops the cached snapshot of key and detaches running loads
// of it, so that later reads go to storage.
func (db *Database) invalidate(key string) {
	db.generationLock.Lock()
	db.generation++
	if db.cache != nil {
		db.cache.Remove(key)
	}
	db.generationLock.Unlock()

	db.loads.Forget(key)
}
