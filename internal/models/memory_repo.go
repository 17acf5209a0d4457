package models

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps every dev backend collection in process memory.
type MemoryRepo struct {
	mu            sync.RWMutex
	events        map[string]*Event
	accounts      map[string]*Account
	byEmail       map[string]string
	bookings      []Booking
	organizers    map[string]*Organizer
	notifications []Notification
}

func MemoryNewRepo() *MemoryRepo {
	return &MemoryRepo{
		events:     make(map[string]*Event),
		accounts:   make(map[string]*Account),
		byEmail:    make(map[string]string),
		organizers: make(map[string]*Organizer),
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func (m *MemoryRepo) ListEvents(ctx context.Context) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (m *MemoryRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *MemoryRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *event
	if cp.ID == "" {
		cp.ID = newID()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.events[cp.ID] = &cp
	out := cp
	return &out, nil
}

// ReserveTickets adds quantity to ticketsSold, failing with ErrSoldOut when
// fewer tickets remain.
func (m *MemoryRepo) ReserveTickets(ctx context.Context, id string, quantity int) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	if quantity > e.AvailableTickets() {
		return nil, ErrSoldOut
	}
	e.TicketsSold += quantity
	cp := *e
	return &cp, nil
}

// ReleaseTickets returns quantity reserved tickets to the pool.
func (m *MemoryRepo) ReleaseTickets(ctx context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil
	}
	e.TicketsSold -= quantity
	if e.TicketsSold < 0 {
		e.TicketsSold = 0
	}
	return nil
}

func (m *MemoryRepo) CreateUser(ctx context.Context, account *Account) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(account.Email)
	if _, taken := m.byEmail[email]; taken {
		return nil, ErrEmailTaken
	}
	cp := *account
	if cp.ID == "" {
		cp.ID = newID()
	}
	cp.CreatedAt = time.Now()
	m.accounts[cp.ID] = &cp
	m.byEmail[email] = cp.ID
	out := cp
	return &out, nil
}

func (m *MemoryRepo) GetUser(ctx context.Context, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepo) GetUserByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.RLock()
	id, ok := m.byEmail[strings.ToLower(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.GetUser(ctx, id)
}

func (m *MemoryRepo) IncrementBookings(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.accounts[id]; ok {
		a.Bookings++
	}
	return nil
}

func (m *MemoryRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *booking
	if cp.ID == "" {
		cp.ID = newID()
	}
	cp.CreatedAt = time.Now()
	m.bookings = append(m.bookings, cp)
	return &cp, nil
}

func (m *MemoryRepo) ListBookingsByUser(ctx context.Context, userID string) ([]Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryRepo) AddNotification(ctx context.Context, n *Notification) (*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *n
	if cp.ID == "" {
		cp.ID = newID()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.notifications = append(m.notifications, cp)
	return &cp, nil
}

// ListNotifications returns the newest notification first.
func (m *MemoryRepo) ListNotifications(ctx context.Context) ([]Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Notification, len(m.notifications))
	for i, n := range m.notifications {
		out[len(out)-1-i] = n
	}
	return out, nil
}

// CreateOrganizer stores one registration per user.
func (m *MemoryRepo) CreateOrganizer(ctx context.Context, o *Organizer) (*Organizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.organizers[o.UserID]; taken {
		return nil, ErrOrganizerExists
	}
	cp := *o
	if cp.ID == "" {
		cp.ID = newID()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.organizers[cp.UserID] = &cp
	out := cp
	return &out, nil
}

func (m *MemoryRepo) GetOrganizerByUser(ctx context.Context, userID string) (*Organizer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.organizers[userID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
