package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aguxez/babyfood/analysis"
	"github.com/aguxez/babyfood/models"
	"github.com/aguxez/babyfood/storage"
)

// DefaultKey is the storage key the entry list lives under.
const DefaultKey = "babyFoodEntries"

var ErrDuplicateID = errors.New("duplicate entry id")

// Listener is called after every change with the new entries and report.
type Listener func(entries []models.FoodEntry, report models.DietAnalysis)

// EntryStore owns the ordered list of food entries. Every mutation is
// persisted in full and followed by a fresh diet analysis.
type EntryStore struct {
	mu       sync.RWMutex
	entries  []models.FoodEntry
	report   models.DietAnalysis
	lastBlob []byte
	writes   uint64 // bumped by every commit

	storage   storage.Storage
	key       string
	loc       *time.Location
	clock     func() time.Time
	weekStart time.Weekday
	analyzer  analysis.Analyzer
	log       logrus.FieldLogger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

type Option func(*EntryStore)

// WithLocation sets the calendar used for day and week boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *EntryStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *EntryStore) {
		if now != nil {
			s.clock = now
		}
	}
}

func WithWeekStart(day time.Weekday) Option {
	return func(s *EntryStore) { s.weekStart = day }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *EntryStore) {
		if log != nil {
			s.log = log
		}
	}
}

func WithKey(key string) Option {
	return func(s *EntryStore) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates the store and loads whatever is persisted under its key. A
// missing or unreadable blob leaves the store empty.
func New(st storage.Storage, opts ...Option) *EntryStore {
	s := &EntryStore{
		storage:   st,
		key:       DefaultKey,
		loc:       time.Local,
		clock:     time.Now,
		weekStart: time.Sunday,
		log:       logrus.StandardLogger(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.analyzer = analysis.Analyzer{
		WeekStart: s.weekStart,
		Now:       func() time.Time { return s.clock().In(s.loc) },
	}
	s.log = s.log.WithField("key", s.key)

	s.load()
	return s
}

func (s *EntryStore) load() {
	data, err := s.storage.Get(context.Background(), s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.log.Debug("no saved entries, starting empty")
	case err != nil:
		s.log.WithError(err).Warn("loading entries failed, starting empty")
	default:
		entries, err := storage.DecodeEntries(data)
		if err != nil {
			s.log.WithError(err).Warn("saved entries are corrupt, starting empty")
			break
		}
		s.entries = entries
		s.lastBlob = data
		s.log.WithField("count", len(entries)).Info("loaded entries")
	}
	s.report = s.analyzer.Analyze(s.entries)
}

// Reload re-reads the persisted list, e.g. after another process wrote it.
// Unlike the initial load, an unreadable blob keeps the current entries. A
// blob read before a concurrent commit is older than memory and is dropped.
func (s *EntryStore) Reload() error {
	s.mu.RLock()
	gen := s.writes
	s.mu.RUnlock()

	data, err := s.storage.Get(context.Background(), s.key)
	if err != nil {
		return fmt.Errorf("reloading entries: %w", err)
	}

	s.mu.Lock()
	if s.writes != gen {
		s.mu.Unlock()
		s.log.Debug("entries changed during reload, keeping memory")
		return nil
	}
	if bytes.Equal(data, s.lastBlob) {
		s.mu.Unlock()
		return nil
	}
	entries, err := storage.DecodeEntries(data)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reloading entries: %w", err)
	}
	s.entries = entries
	s.lastBlob = data
	s.report = s.analyzer.Analyze(s.entries)
	entriesCopy, report := s.snapshotLocked()
	s.mu.Unlock()

	s.log.WithField("count", len(entries)).Info("reloaded entries")
	s.notify(entriesCopy, report)
	return nil
}

// Add appends entry. An entry without an id gets a new one, which is
// returned.
func (s *EntryStore) Add(entry models.FoodEntry) (uuid.UUID, error) {
	entry = entry.Normalize()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := entry.Validate(); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	if s.indexLocked(entry.ID) >= 0 {
		s.mu.Unlock()
		return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
	}
	s.entries = append(s.entries, entry.Clone())
	s.commitAndNotify()
	return entry.ID, nil
}

// Update replaces the entry with the same id. Unknown ids are ignored.
func (s *EntryStore) Update(entry models.FoodEntry) error {
	entry = entry.Normalize()
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexLocked(entry.ID); i >= 0 {
		s.entries[i] = entry.Clone()
	}
	s.commitAndNotify()
	return nil
}

// Remove deletes every entry with the given id.
func (s *EntryStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.commitAndNotify()
}

// RemoveAt deletes the entries at the given positions of the current list.
// Positions out of range are ignored.
func (s *EntryStore) RemoveAt(positions ...int) {
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}

	s.mu.Lock()
	kept := s.entries[:0:0]
	for i, e := range s.entries {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.commitAndNotify()
}

// commitAndNotify must be called with mu held; it releases it.
func (s *EntryStore) commitAndNotify() {
	s.writes++
	s.persistLocked()
	s.report = s.analyzer.Analyze(s.entries)
	entries, report := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(entries, report)
}

// persistLocked writes the whole list. Failures are logged only; the
// in-memory list stays authoritative.
func (s *EntryStore) persistLocked() {
	data, err := storage.EncodeEntries(s.entries)
	if err != nil {
		s.log.WithError(err).Warn("encoding entries failed")
		return
	}
	if err := s.storage.Put(context.Background(), s.key, data); err != nil {
		s.log.WithError(err).Warn("saving entries failed")
		return
	}
	s.lastBlob = data
}

func (s *EntryStore) indexLocked(id uuid.UUID) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *EntryStore) snapshotLocked() ([]models.FoodEntry, models.DietAnalysis) {
	return cloneEntries(s.entries), cloneReport(s.report)
}

// Subscribe registers fn for change notifications and returns a func that
// removes it. Listeners run synchronously on the mutating goroutine.
func (s *EntryStore) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *EntryStore) notify(entries []models.FoodEntry, report models.DietAnalysis) {
	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(entries, report)
	}
}

func cloneEntries(entries []models.FoodEntry) []models.FoodEntry {
	out := make([]models.FoodEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

func cloneReport(r models.DietAnalysis) models.DietAnalysis {
	breakdown := make(map[models.Category]int, len(r.CategoryBreakdown))
	for c, n := range r.CategoryBreakdown {
		breakdown[c] = n
	}
	r.CategoryBreakdown = breakdown
	r.Recommendations = append([]string{}, r.Recommendations...)
	r.Insights = append([]string{}, r.Insights...)
	return r
}
