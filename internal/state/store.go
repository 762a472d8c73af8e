// Package state holds the application state store: the single shared
// container for insights, settings, notifications and the loading/error
// flags. Every mutation is synchronous, serialized, and produces a new
// snapshot that subscribers observe atomically. Stores are created
// through New so tests get isolated instances; there is no package-level
// singleton.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucent-dev/lucent/internal/api"
)

// NotificationType categorizes transient notifications.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is a transient, client-local message. It is never
// persisted and does not survive a restart.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification builds a notification with a fresh id.
func NewNotification(kind NotificationType, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Snapshot is one consistent view of the shared state. Insights and
// notifications are copies of the store's slices; callers must treat
// insight contents as read-only.
type Snapshot struct {
	Insights      []api.Insight
	Settings      api.Settings
	Notifications []Notification
	Loading       bool
	Error         string
}

// Persister stores the durable subset of state (settings only) across
// process restarts.
type Persister interface {
	LoadSettings() (api.Settings, bool, error)
	SaveSettings(api.Settings) error
}

// Inspector observes every mutation for debugging. Implementations must
// not mutate the snapshots and must not block.
type Inspector interface {
	OnMutation(name string, before, after Snapshot)
}

// Store is the shared application state container.
type Store struct {
	mu        sync.Mutex
	snap      Snapshot
	subs      map[int]chan Snapshot
	nextSub   int
	persister Persister
	inspector Inspector
}

// Option configures a Store.
type Option func(*Store)

// WithPersister attaches durable storage for settings. Persisted
// settings are loaded during New; a load failure (missing or corrupted
// record) falls back to defaults.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithInspector attaches a mutation observer.
func WithInspector(i Inspector) Option {
	return func(s *Store) { s.inspector = i }
}

// New creates a store with default initial state. Insights,
// notifications, loading and error always start empty; settings come
// from the persister when one is attached and readable.
func New(opts ...Option) *Store {
	s := &Store{
		snap: Snapshot{
			Settings: api.DefaultSettings(),
		},
		subs: make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persister != nil {
		if settings, ok, err := s.persister.LoadSettings(); err == nil && ok {
			s.snap.Settings = settings.Clone()
		}
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Subscribe registers a listener for state changes. The returned channel
// carries the latest snapshot after each mutation; intermediate
// snapshots may be coalesced but the final state is always delivered.
// Cancel releases the subscription.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// SetInsights replaces the insight list wholesale, keeping server order.
func (s *Store) SetInsights(insights []api.Insight) {
	s.mutate("setInsights", func(snap *Snapshot) {
		snap.Insights = append([]api.Insight(nil), insights...)
	})
}

// ReplaceSettings installs a full settings document, typically the
// server's response to a patch, and persists it.
func (s *Store) ReplaceSettings(settings api.Settings) {
	s.mutate("replaceSettings", func(snap *Snapshot) {
		snap.Settings = settings.Clone()
	})
	s.persistSettings()
}

// UpdateSettings merges a partial patch into the current settings.
// Unlisted keys are retained; dotted "integrations.X" keys address
// individual integration toggles. The result is persisted.
func (s *Store) UpdateSettings(patch api.SettingsPatch) {
	s.mutate("updateSettings", func(snap *Snapshot) {
		snap.Settings = ApplyPatch(snap.Settings, patch)
	})
	s.persistSettings()
}

// AddNotification appends a notification. Duplicate ids are permitted;
// the store does not dedup.
func (s *Store) AddNotification(n Notification) {
	s.mutate("addNotification", func(snap *Snapshot) {
		snap.Notifications = append(snap.Notifications, n)
	})
}

// RemoveNotification removes the first notification with the given id.
// Removing an unknown id is a no-op.
func (s *Store) RemoveNotification(id string) {
	s.mutate("removeNotification", func(snap *Snapshot) {
		for i, n := range snap.Notifications {
			if n.ID == id {
				snap.Notifications = append(snap.Notifications[:i:i], snap.Notifications[i+1:]...)
				return
			}
		}
	})
}

// SetLoading overwrites the process-wide loading flag. Only one logical
// in-flight signal exists; overlapping operations race and the last
// writer wins.
func (s *Store) SetLoading(loading bool) {
	s.mutate("setLoading", func(snap *Snapshot) {
		snap.Loading = loading
	})
}

// SetError overwrites the process-wide error message. Empty clears it.
func (s *Store) SetError(msg string) {
	s.mutate("setError", func(snap *Snapshot) {
		snap.Error = msg
	})
}

// mutate applies fn under the lock, records the mutation with the
// inspector, and notifies subscribers with the new snapshot.
func (s *Store) mutate(name string, fn func(*Snapshot)) {
	s.mu.Lock()

	var before Snapshot
	if s.inspector != nil {
		before = s.snap.clone()
	}

	fn(&s.snap)
	after := s.snap.clone()

	for _, ch := range s.subs {
		// Coalesce: drop the stale pending snapshot, keep the channel
		// holding the latest state.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- after:
		default:
		}
	}
	s.mu.Unlock()

	if s.inspector != nil {
		s.inspector.OnMutation(name, before, after)
	}
}

func (s *Store) persistSettings() {
	if s.persister == nil {
		return
	}
	s.mu.Lock()
	settings := s.snap.Settings.Clone()
	s.mu.Unlock()
	// Persistence failures must not break the in-memory store; the
	// inspector log is the only trace.
	_ = s.persister.SaveSettings(settings)
}

func (snap Snapshot) clone() Snapshot {
	out := snap
	out.Insights = append([]api.Insight(nil), snap.Insights...)
	out.Notifications = append([]Notification(nil), snap.Notifications...)
	out.Settings = snap.Settings.Clone()
	return out
}
