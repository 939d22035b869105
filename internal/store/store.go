// Package store caches the four record collections fetched from the
// record-keeping API. The cached snapshot is replaced wholesale after every
// write; it is never patched in place.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"oak-ledger/internal/ledger"
	"oak-ledger/internal/model"
	"oak-ledger/internal/notify"
	"oak-ledger/internal/window"
	"oak-ledger/prometheus"
)

// Remote is the subset of the record-keeping API the store depends on
type Remote interface {
	ListInventory(ctx context.Context) ([]model.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item model.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, item model.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error

	ListOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, order model.Order) error

	ListLaborers(ctx context.Context) ([]model.Laborer, error)
	CreateLaborer(ctx context.Context, l model.Laborer) error
	UpdateLaborer(ctx context.Context, l model.Laborer) error
	DeleteLaborer(ctx context.Context, id string) error

	ListExpenses(ctx context.Context) ([]model.Expense, error)
	CreateExpense(ctx context.Context, e model.Expense) error
}

// Session tells the store whether it may talk to the server
type Session interface {
	Authenticated() bool
}

// Notifier receives the notices raised by failed writes and reloads
type Notifier interface {
	Push(level notify.Level, message string) notify.Notification
}

// LoadState is the per-collection fetch state
type LoadState int

const (
	Empty LoadState = iota
	Loading
	Loaded
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	}
	return "empty"
}

// Snapshot is one immutable view of the cached collections. Callers must not
// modify the slices.
type Snapshot struct {
	Inventory  []model.InventoryItem `json:"inventory"`
	Orders     []model.Order         `json:"orders"`
	Laborers   []model.Laborer       `json:"laborers"`
	Expenses   []model.Expense       `json:"expenses"`
	Generation uint64                `json:"generation"`
	FetchedAt  time.Time             `json:"fetchedAt"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Inventory: []model.InventoryItem{},
		Orders:    []model.Order{},
		Laborers:  []model.Laborer{},
		Expenses:  []model.Expense{},
	}
}

// Store owns the cached collections
type Store struct {
	remote   Remote
	session  Session
	notifier Notifier
	log      *zap.Logger
	policy   ConsistencyPolicy
	now      func() time.Time
	loc      *time.Location

	gen atomic.Uint64

	mu       sync.RWMutex
	snap     *Snapshot
	applied  map[Collection]uint64
	inflight map[Collection]int
	loaded   map[Collection]bool
}

// Option customises a Store
type Option func(*Store)

// WithPolicy sets the reload policy used after writes
func WithPolicy(p ConsistencyPolicy) Option {
	return func(s *Store) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithClock overrides the time source used for "today"
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone in which "today" is decided
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates an empty store. Nothing is fetched until Refresh is called.
func New(remote Remote, session Session, notifier Notifier, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.NewCenter(notify.DefaultCapacity)
	}
	s := &Store{
		remote:   remote,
		session:  session,
		notifier: notifier,
		log:      log,
		policy:   FullReload{},
		now:      time.Now,
		loc:      time.UTC,
		snap:     emptySnapshot(),
		applied:  make(map[Collection]uint64),
		inflight: make(map[Collection]int),
		loaded:   make(map[Collection]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the reload policy in use
func (s *Store) Policy() ConsistencyPolicy {
	return s.policy
}

// Now returns the current time in the store's zone
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar date in the store's zone
func (s *Store) Today() string {
	return window.Date(s.Now())
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.snap
}

// State returns the fetch state of one collection
func (s *Store) State(c Collection) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.inflight[c] > 0:
		return Loading
	case s.loaded[c]:
		return Loaded
	}
	return Empty
}

// States returns the fetch state of every collection
func (s *Store) States() map[Collection]LoadState {
	out := make(map[Collection]LoadState, len(AllCollections))
	for _, c := range AllCollections {
		out[c] = s.State(c)
	}
	return out
}

// Summary computes today's dashboard figures from the current snapshot
func (s *Store) Summary() ledger.Summary {
	return s.SummaryOf(s.Snapshot())
}

// SummaryOf computes today's dashboard figures from snap
func (s *Store) SummaryOf(snap Snapshot) ledger.Summary {
	sum := ledger.Summarize(snap.Inventory, snap.Orders, snap.Expenses, s.Today())
	prometheus.UpdateDashboard(sum.TotalStock, len(sum.LowStock), sum.TodaySales, sum.TodayExpenses)
	return sum
}

func (s *Store) FindItem(id string) (model.InventoryItem, bool) {
	for _, item := range s.Snapshot().Inventory {
		if item.ID == id {
			return item, true
		}
	}
	return model.InventoryItem{}, false
}

func (s *Store) FindOrder(id string) (model.Order, bool) {
	for _, o := range s.Snapshot().Orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

func (s *Store) FindLaborer(id string) (model.Laborer, bool) {
	for _, l := range s.Snapshot().Laborers {
		if l.ID == id {
			return l, true
		}
	}
	return model.Laborer{}, false
}

// Reset empties the cache. Reloads still in flight are discarded when they land.
func (s *Store) Reset() {
	floor := s.gen.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = emptySnapshot()
	for _, c := range AllCollections {
		s.applied[c] = floor
		s.loaded[c] = false
	}
}
