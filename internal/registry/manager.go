package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/pubsub"
)

// Manager owns the registry collection. All mutation goes through Submit
// and Remove; readers get copies.
type Manager struct {
	mu        sync.RWMutex
	records   []Record
	validator *fieldValidator
	broker    *pubsub.Broker[Record]
	now       func() time.Time
	newID     func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// NewManager creates an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		validator: newFieldValidator(),
		broker:    pubsub.NewBroker[Record](),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Submit validates raw input and appends a new record. On error the
// collection is unchanged and the error wraps ErrMissingRequiredField,
// ErrInvalidEmailFormat or ErrDuplicateEmail.
func (m *Manager) Submit(raw Fields) (Record, error) {
	f := raw.Normalize()
	if err := m.validator.check(f); err != nil {
		log.Debug(log.CatRegistry, "Submission rejected", "email", f.Email, "reason", err)
		return Record{}, err
	}

	m.mu.Lock()
	if m.indexOfLocked(f.Email) >= 0 {
		m.mu.Unlock()
		log.Debug(log.CatRegistry, "Duplicate email rejected", "email", f.Email)
		return Record{}, &ValidationError{Err: ErrDuplicateEmail, Fields: []string{"email"}, Email: f.Email}
	}
	rec := Record{
		ID:        m.newID(),
		Name:      f.Name,
		Surname:   f.Surname,
		BirthDate: f.BirthDate,
		Email:     f.Email,
		Contact:   f.Contact,
		Phone:     f.Phone,
		Role:      f.Role,
		CreatedAt: m.now(),
	}
	m.records = append(m.records, rec)
	count := len(m.records)
	m.mu.Unlock()

	log.Info(log.CatRegistry, "Record added", "id", rec.ID, "email", rec.Email, "role", rec.Role, "count", count)
	m.broker.Publish(pubsub.CreatedEvent, rec)
	return rec, nil
}

// Remove deletes every record whose email equals email exactly and returns
// how many were removed. Unknown emails are a no-op.
func (m *Manager) Remove(email string) int {
	m.mu.Lock()
	kept := m.records[:0:0]
	var removed []Record
	for _, r := range m.records {
		if r.Email == email {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	if len(removed) > 0 {
		m.records = kept
	}
	count := len(m.records)
	m.mu.Unlock()

	if len(removed) == 0 {
		log.Debug(log.CatRegistry, "Remove matched nothing", "email", email)
		return 0
	}
	for _, r := range removed {
		m.broker.Publish(pubsub.DeletedEvent, r)
	}
	log.Info(log.CatRegistry, "Record removed", "email", email, "count", count)
	return len(removed)
}

// FilteredView returns the records whose role equals role, or every record
// when role is AllRoles, in insertion order.
func (m *Manager) FilteredView(role string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if role == AllRoles || r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the collection size.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Lookup finds a record by exact email.
func (m *Manager) Lookup(email string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOfLocked(email); i >= 0 {
		return m.records[i], true
	}
	return Record{}, false
}

// Roles lists the distinct roles present, in first-seen order.
func (m *Manager) Roles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(m.records))
	var roles []string
	for _, r := range m.records {
		if _, ok := seen[r.Role]; ok {
			continue
		}
		seen[r.Role] = struct{}{}
		roles = append(roles, r.Role)
	}
	return roles
}

// Broker publishes CreatedEvent and DeletedEvent for every change.
func (m *Manager) Broker() *pubsub.Broker[Record] {
	return m.broker
}

// Close releases subscribers.
func (m *Manager) Close() {
	m.broker.Close()
}

func (m *Manager) indexOfLocked(email string) int {
	for i, r := range m.records {
		if r.Email == email {
			return i
		}
	}
	return -1
}
