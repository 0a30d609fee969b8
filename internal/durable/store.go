// Package durable implements a persistent interner backed by SQLite. Shapes
// live in one entities table deduplicated by a canonical payload, so
// interning is canonical across process restarts: reopening a store and
// interning the same shape yields the same row. Handles are (store id, row)
// pairs; the store id survives in the meta table, which is what makes a
// handle's row meaningful across runs of the same store.
//
// This backend deliberately relaxes the in-memory resolve contract: resolve
// decodes the stored payload and therefore allocates, and costs a query
// rather than an index. It exists for hosts that need durable, serializable
// entity ids (caches, incremental builds), not for the solver hot path —
// pair it with the arena backend there.
package durable

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/twmb/murmur3"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

//go:embed schema.sql
var schemaSQL string

// DBName is the database file created inside the store directory.
const DBName = "amber.db"

// entity kinds as stored in the kind column.
const (
	kindType uint8 = iota + 1
	kindLifetime
	kindGoal
	kindSubst
	kindGoals
)

// Handle is a persistent handle: the minting store's identity plus the
// entity's rowid. Handles from one run resolve in any later run of the same
// store via HandleForRow.
type Handle struct {
	store uint64
	row   int64
}

// Row returns the persistent row id, the part of the handle a host may
// serialize and carry across runs.
func (h Handle) Row() int64 { return h.row }

// Store is the persistent interner. The zero value is not usable; call Open.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
	id uint64
}

// Open opens (or creates) the store under dir, creating the directory if
// needed. The store identity is generated on first open and read back on
// every later one.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DBName))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	id, err := storeIdentity(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, id: id}, nil
}

// Close releases the underlying database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// HandleForRow rebinds a serialized row id to this store. The handle is only
// as valid as the row id: resolving a row that was never minted fails.
func (s *Store) HandleForRow(row int64) Handle {
	return Handle{store: s.id, row: row}
}

// storeIdentity reads the persisted store id, minting a UUID on first open.
// The instance tag carried in handles is the 64-bit murmur3 of that UUID.
func storeIdentity(db *sql.DB) (uint64, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'store_id'`).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		value = uuid.Must(uuid.NewV7()).String()
		if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('store_id', ?)`, value); err != nil {
			return 0, fmt.Errorf("persist store id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("read store id: %w", err)
	}
	return murmur3.Sum64([]byte(value)), nil
}

var _ ir.Interner[Handle] = (*Store)(nil)

// intern returns the canonical handle for (kind, payload), inserting the row
// on first sight. The UNIQUE constraint backs the same dedup guarantee the
// arena gives in memory.
func (s *Store) intern(kind uint8, payload string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return Handle{}, ir.ErrExhausted
	}

	var row int64
	err := s.db.QueryRow(
		`SELECT id FROM entities WHERE kind = ? AND payload = ?`, kind, payload,
	).Scan(&row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.Exec(
			`INSERT INTO entities (kind, payload) VALUES (?, ?)`, kind, payload,
		)
		if err != nil {
			return Handle{}, fmt.Errorf("intern entity: %w", err)
		}
		row, err = res.LastInsertId()
		if err != nil {
			return Handle{}, fmt.Errorf("intern entity: %w", err)
		}
	case err != nil:
		return Handle{}, fmt.Errorf("intern lookup: %w", err)
	}
	return Handle{store: s.id, row: row}, nil
}

// lookup fetches the payload behind a handle, enforcing store and kind tags.
func (s *Store) lookup(h Handle, kind uint8) (string, error) {
	if h.store != s.id {
		return "", ir.ErrForeignHandle
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return "", ir.ErrStaleHandle
	}

	var storedKind uint8
	var payload string
	err := s.db.QueryRow(
		`SELECT kind, payload FROM entities WHERE id = ?`, h.row,
	).Scan(&storedKind, &payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ir.ErrStaleHandle
	case err != nil:
		return "", fmt.Errorf("resolve entity: %w", err)
	}
	if storedKind != kind {
		return "", ir.ErrWrongKind
	}
	return payload, nil
}

// InternType returns the canonical handle for the type shape.
func (s *Store) InternType(sh ir.TypeShape[Handle]) (Handle, error) {
	payload, err := s.encodeType(sh)
	if err != nil {
		return Handle{}, err
	}
	return s.intern(kindType, payload)
}

// TypeData returns the shape stored under a type handle.
func (s *Store) TypeData(h Handle) (ir.TypeShape[Handle], error) {
	payload, err := s.lookup(h, kindType)
	if err != nil {
		return ir.TypeShape[Handle]{}, err
	}
	return s.decodeType(payload)
}

// InternLifetime returns the canonical handle for the lifetime shape.
func (s *Store) InternLifetime(sh ir.LifetimeShape[Handle]) (Handle, error) {
	payload, err := s.encodeLifetime(sh)
	if err != nil {
		return Handle{}, err
	}
	return s.intern(kindLifetime, payload)
}

// LifetimeData returns the shape stored under a lifetime handle.
func (s *Store) LifetimeData(h Handle) (ir.LifetimeShape[Handle], error) {
	payload, err := s.lookup(h, kindLifetime)
	if err != nil {
		return ir.LifetimeShape[Handle]{}, err
	}
	return s.decodeLifetime(payload)
}

// InternGoal returns the canonical handle for the goal shape.
func (s *Store) InternGoal(sh ir.GoalShape[Handle]) (Handle, error) {
	payload, err := s.encodeGoal(sh)
	if err != nil {
		return Handle{}, err
	}
	return s.intern(kindGoal, payload)
}

// GoalData returns the shape stored under a goal handle.
func (s *Store) GoalData(h Handle) (ir.GoalShape[Handle], error) {
	payload, err := s.lookup(h, kindGoal)
	if err != nil {
		return ir.GoalShape[Handle]{}, err
	}
	return s.decodeGoal(payload)
}

// InternSubst returns the canonical handle for the substitution shape.
func (s *Store) InternSubst(sh ir.SubstShape[Handle]) (Handle, error) {
	payload, err := s.encodeSubst(sh)
	if err != nil {
		return Handle{}, err
	}
	return s.intern(kindSubst, payload)
}

// SubstData returns the shape stored under a substitution handle.
func (s *Store) SubstData(h Handle) (ir.SubstShape[Handle], error) {
	payload, err := s.lookup(h, kindSubst)
	if err != nil {
		return ir.SubstShape[Handle]{}, err
	}
	return s.decodeSubst(payload)
}

// InternGoals returns the canonical handle for the goal-list shape.
func (s *Store) InternGoals(sh ir.GoalsShape[Handle]) (Handle, error) {
	payload, err := s.encodeGoals(sh)
	if err != nil {
		return Handle{}, err
	}
	return s.intern(kindGoals, payload)
}

// GoalsData returns the shape stored under a goal-list handle.
func (s *Store) GoalsData(h Handle) (ir.GoalsShape[Handle], error) {
	payload, err := s.lookup(h, kindGoals)
	if err != nil {
		return ir.GoalsShape[Handle]{}, err
	}
	return s.decodeGoals(payload)
}

// Stats reports entity counts by kind.
type Stats struct {
	Types     int
	Lifetimes int
	Goals     int
	Substs    int
	GoalLists int
	Total     int
}

// Stats counts the entities currently interned in the store.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Stats{}, errors.New("store is closed")
	}

	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM entities GROUP BY kind`)
	if err != nil {
		return Stats{}, fmt.Errorf("count entities: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var kind uint8
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return Stats{}, fmt.Errorf("count entities: %w", err)
		}
		switch kind {
		case kindType:
			st.Types = n
		case kindLifetime:
			st.Lifetimes = n
		case kindGoal:
			st.Goals = n
		case kindSubst:
			st.Substs = n
		case kindGoals:
			st.GoalLists = n
		}
		st.Total += n
	}
	return st, rows.Err()
}
