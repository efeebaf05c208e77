package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageKey names the single durable value holding the whole collection.
// The version suffix is the only schema signal; bumping it orphans old data.
const StorageKey = "financeflow_expenses_v1"

// Validation errors returned by Add and Update.
var (
	ErrEmptyTitle    = errors.New("expense: title must not be empty")
	ErrInvalidAmount = errors.New("expense: amount must be positive")
)

// ValidAmount reports whether a is a positive finite amount. NaN and the
// infinities fail: encoding/json cannot marshal non-finite values, so one
// bad record would wedge every later persist.
func ValidAmount(a float64) bool {
	return a > 0 && !math.IsInf(a, 1)
}

// KeyValue is the durable-storage capability the store persists through.
// Get reports whether the key exists; Set replaces the whole value.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store owns the canonical record collection, newest-created-first.
// Every mutation synchronously rewrites the full collection under StorageKey.
// All access happens on a single goroutine (the TUI update loop), so the
// store carries no locking.
type Store struct {
	kv      KeyValue
	records []Record

	now   func() time.Time
	newID func() string
}

// NewStore creates a store over kv. Call Load before first use.
func NewStore(kv KeyValue) *Store {
	return &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads the persisted collection. A missing key or unparseable value
// yields an empty collection and no error: corrupt data is treated as no data.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	if !ok {
		s.records = nil
		return nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.records = nil
		return nil
	}
	s.records = records
	return nil
}

// Records returns a snapshot copy of the collection, newest-created-first.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Add validates the draft, assigns a fresh id and creation timestamp,
// prepends the record and persists. On validation failure nothing changes.
func (s *Store) Add(ctx context.Context, d Draft) (Record, error) {
	if strings.TrimSpace(d.Title) == "" {
		return Record{}, ErrEmptyTitle
	}
	if !ValidAmount(d.Amount) {
		return Record{}, ErrInvalidAmount
	}
	rec := Record{
		ID:        s.newID(),
		Title:     d.Title,
		Amount:    d.Amount,
		Category:  d.Category,
		Date:      d.Date,
		CreatedAt: s.now().UnixMilli(),
	}
	s.records = append([]Record{rec}, s.records...)
	if err := s.persist(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

// Update validates rec and replaces the record whose id matches. CreatedAt
// is preserved from the existing record. Unknown ids are a no-op.
func (s *Store) Update(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return ErrEmptyTitle
	}
	if !ValidAmount(rec.Amount) {
		return ErrInvalidAmount
	}
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			rec.CreatedAt = s.records[i].CreatedAt
			s.records[i] = rec
			return s.persist(ctx)
		}
	}
	return nil
}

// Remove deletes the record with the given id. Absent ids are a no-op.
// Callers are expected to confirm with the user first.
func (s *Store) Remove(ctx context.Context, id string) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// persist rewrites the entire collection. A write failure leaves the
// in-memory state as is; the session stays correct and the next successful
// write catches durable storage back up.
func (s *Store) persist(ctx context.Context) error {
	records := s.records
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persist expenses: %w", err)
	}
	return nil
}
