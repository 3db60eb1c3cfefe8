// Package tilestore mediates access to the binary container file and caps
// the number of decoded tile blobs held in memory (spec §4.1), grounded on
// atlasdatatech-tiler/spatialite.go's database/sql + sqlite driver idiom
// for opening the container, and on the teacher's
// pkg/engine/routing/engine.go hashicorp/golang-lru/v2 cache field for the
// bounded LRU.
package tilestore

import (
	"database/sql"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/tileroute/tileroute/pkg/apperr"
	"github.com/tileroute/tileroute/pkg/tile"
)

// Store opens the SQLite-backed container and caches decoded tile blobs
// behind a bounded LRU (spec §4.1, §6).
type Store struct {
	db    *sql.DB
	cache *lru.Cache[tile.Key, *tile.Blob]
	cap   int
	zoom  uint8
	log   *zap.Logger
	stmt  *sql.Stmt
}

// Open opens containerPath and sizes the tile cache to cacheCapacity.
// cacheCapacity == 0 disables caching entirely (spec §4.1). A failure to
// open the container is fatal: it is reported as apperr.DataError.
func Open(containerPath string, cacheCapacity int, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", containerPath+"?_journal_mode=WAL&_sync=NORMAL&_temp_store=MEMORY&mode=ro")
	if err != nil {
		return nil, apperr.Wrapf(apperr.DataError, err, "tilestore: open container %q", containerPath)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperr.Wrapf(apperr.DataError, err, "tilestore: cannot reach container %q", containerPath)
	}

	stmt, err := db.Prepare(`SELECT data FROM land_tiles WHERE z = ? AND x = ? AND y = ? LIMIT 1`)
	if err != nil {
		db.Close()
		return nil, apperr.Wrapf(apperr.DataError, err, "tilestore: prepare tile query")
	}

	s := &Store{db: db, cap: cacheCapacity, log: log, stmt: stmt}

	if cacheCapacity > 0 {
		c, err := lru.New[tile.Key, *tile.Blob](cacheCapacity)
		if err != nil {
			db.Close()
			return nil, apperr.Wrapf(apperr.DataError, err, "tilestore: build LRU cache")
		}
		s.cache = c
	}

	log.Info("tilestore: container opened", zap.String("path", containerPath), zap.Int("cache_capacity", cacheCapacity))
	return s, nil
}

func (s *Store) Close() error {
	if s.stmt != nil {
		s.stmt.Close()
	}
	return s.db.Close()
}

// SetZoom / Zoom persist the working zoom used by higher layers (spec
// §4.1).
func (s *Store) SetZoom(z uint8) { s.zoom = z }
func (s *Store) Zoom() uint8     { return s.zoom }

// Load returns a shared handle to the decoded byte buffer for key, or
// (nil, false) if the container has no such tile. A cache hit promotes the
// entry to most-recently-used; a miss reads from the container and
// inserts into the cache, evicting least-recently-used when at capacity
// (spec §4.1).
func (s *Store) Load(key tile.Key) (*tile.Blob, bool, error) {
	if s.cache != nil {
		if b, ok := s.cache.Get(key); ok {
			return b, true, nil
		}
	}

	row := s.stmt.QueryRow(int(key.Z), int(key.X), int(key.Y))
	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, apperr.Wrapf(apperr.DataError, err, "tilestore: read tile %+v", key)
	}

	blob := tile.NewBlob(data)
	if s.cache != nil {
		s.cache.Add(key, blob)
	}
	return blob, true, nil
}

// Metadata reads a single key/value pair from the builder-written metadata
// table (spec §6: "everything else is written by the builder"; this is a
// read-only accessor the core does not depend on for routing).
func (s *Store) Metadata(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}
