package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/outdoor-rental/internal/availability"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/queue"
	"github.com/iliyamo/outdoor-rental/internal/repository"
)

// memStore is an in-memory OutdoorStore and ReservationStore. WithOutdoorLock
// holds a single mutex for the whole callback, which gives the same
// serialization the MySQL row lock gives per outdoor.
type memStore struct {
	mu           sync.Mutex
	lock         sync.Mutex
	nextOutdoor  uint64
	nextRes      uint64
	outdoors     map[uint64]model.Outdoor
	reservations map[uint64]model.Reservation
	inserts      int
	failList     error
}

func newMemStore() *memStore {
	return &memStore{
		outdoors:     make(map[uint64]model.Outdoor),
		reservations: make(map[uint64]model.Reservation),
	}
}

func (m *memStore) addOutdoor(o model.Outdoor) model.Outdoor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOutdoor++
	o.ID = m.nextOutdoor
	m.outdoors[o.ID] = o
	return o
}

func (m *memStore) addReservation(r model.Reservation) model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRes++
	r.ID = m.nextRes
	if r.Status == "" {
		r.Status = model.StatusOccupied
	}
	m.reservations[r.ID] = r
	return r
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

func (m *memStore) List(_ context.Context, f model.OutdoorFilter) ([]model.Outdoor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]model.Outdoor, 0, len(m.outdoors))
	for _, o := range m.outdoors {
		if f.Active != nil && o.Active != *f.Active {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Outdoor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.outdoors[id]
	if !ok {
		return nil, repository.ErrOutdoorNotFound
	}
	return &o, nil
}

func (m *memStore) Create(_ context.Context, o *model.Outdoor) error {
	*o = m.addOutdoor(*o)
	return nil
}

func (m *memStore) Update(_ context.Context, o *model.Outdoor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.outdoors[o.ID]; !ok {
		return repository.ErrOutdoorNotFound
	}
	m.outdoors[o.ID] = *o
	return nil
}

func (m *memStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.outdoors[id]; !ok {
		return repository.ErrOutdoorNotFound
	}
	delete(m.outdoors, id)
	for rid, r := range m.reservations {
		if r.OutdoorID == id {
			delete(m.reservations, rid)
		}
	}
	return nil
}

func (m *memStore) FindOverlapping(_ context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapping(outdoorID, start, end), nil
}

func (m *memStore) overlapping(outdoorID uint64, start, end model.Date) []model.Reservation {
	want := availability.Interval{Start: start, End: end}
	out := make([]model.Reservation, 0)
	for _, r := range m.sortedReservations() {
		if r.OutdoorID == outdoorID && r.Status == model.StatusOccupied && availability.Of(r).Overlaps(want) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) sortedReservations() []model.Reservation {
	out := make([]model.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memStore) ListIntersecting(_ context.Context, start, end model.Date, outdoorID *uint64) ([]model.ReservationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := availability.Interval{Start: start, End: end}
	out := make([]model.ReservationDetail, 0)
	for _, r := range m.sortedReservations() {
		if outdoorID != nil && r.OutdoorID != *outdoorID {
			continue
		}
		if !availability.Of(r).Overlaps(want) {
			continue
		}
		o := m.outdoors[r.OutdoorID]
		out = append(out, model.ReservationDetail{
			Reservation:         r,
			OutdoorName:         o.Name,
			OutdoorLocation:     o.Location,
			OutdoorMonthlyPrice: o.MonthlyPrice,
		})
	}
	return out, nil
}

func (m *memStore) ListByOutdoor(_ context.Context, outdoorID uint64) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedReservations()
	out := make([]model.Reservation, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].OutdoorID == outdoorID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (m *memStore) deleteReservation(id uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	delete(m.reservations, id)
	return &r, nil
}

func (m *memStore) WithOutdoorLock(ctx context.Context, outdoorID uint64, fn func(ctx context.Context, outdoor model.Outdoor, tx repository.ReservationTx) error) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	o, err := m.GetByID(ctx, outdoorID)
	if err != nil {
		return err
	}
	tx := &memTx{store: m}
	if err := fn(ctx, *o, tx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range tx.staged {
		m.reservations[r.ID] = r
		m.inserts++
	}
	return nil
}

// memTx stages inserts until the callback returns nil.
type memTx struct {
	store  *memStore
	staged []model.Reservation
}

func (t *memTx) FindOverlapping(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	return t.store.FindOverlapping(ctx, outdoorID, start, end)
}

func (t *memTx) Insert(_ context.Context, res *model.Reservation) error {
	t.store.mu.Lock()
	t.store.nextRes++
	res.ID = t.store.nextRes
	t.store.mu.Unlock()
	// DECIMAL(12,2) column
	res.TotalValue = res.TotalValue.Round(2)
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	t.staged = append(t.staged, *res)
	return nil
}

// reservationStore adapts memStore's reservation side; Delete collides with
// the outdoor side's Delete.
type reservationStore struct{ *memStore }

func (r reservationStore) Delete(_ context.Context, id uint64) (*model.Reservation, error) {
	return r.deleteReservation(id)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

var errBrokerDown = errors.New("broker down")
