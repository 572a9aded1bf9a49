// Package memstore keeps documents in process memory. It honours the same
// contracts as the MongoDB stores and backs tests that run without a
// database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/store"
)

// Memory implements store.Stores.
type Memory struct {
	faults *faults

	users    *Users
	garages  *Garages
	events   *Events
	messages *Messages
	site     *SiteConfig
}

type faults struct {
	mu  sync.RWMutex
	err error
}

func (f *faults) get(op string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.err == nil {
		return nil
	}
	return apperr.Store(op, f.err)
}

// New returns an empty in-memory store.
func New() *Memory {
	f := &faults{}
	return &Memory{
		faults:   f,
		users:    &Users{faults: f, byID: map[primitive.ObjectID]models.User{}},
		garages:  &Garages{faults: f, byID: map[primitive.ObjectID]models.Garage{}},
		events:   &Events{faults: f, byID: map[primitive.ObjectID]models.Event{}},
		messages: &Messages{faults: f, byID: map[primitive.ObjectID]models.Message{}},
		site:     &SiteConfig{faults: f},
	}
}

// FailWith makes every subsequent operation fail with a StoreError wrapping
// err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.faults.mu.Lock()
	m.faults.err = err
	m.faults.mu.Unlock()
}

func (m *Memory) Users() store.UserStore { return m.users }

func (m *Memory) Garages() store.GarageStore { return m.garages }

func (m *Memory) Events() store.EventStore { return m.events }

func (m *Memory) Messages() store.MessageStore { return m.messages }

func (m *Memory) SiteConfig() store.SiteConfigStore { return m.site }

func (m *Memory) Ping(context.Context) error { return m.faults.get("ping") }

// ---------------- users ----------------

type Users struct {
	faults *faults
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]models.User
}

func (s *Users) Insert(_ context.Context, u *models.User) error {
	if err := s.faults.get("insert user"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = store.NormalizeEmail(u.Email)
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.byID[u.ID] = *u
	return nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if err := s.faults.get("find user"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = store.NormalizeEmail(email)
	for _, u := range s.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if err := s.faults.get("find user"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

// ---------------- garages ----------------

type Garages struct {
	faults *faults
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]models.Garage
}

func (s *Garages) Insert(_ context.Context, g *models.Garage) error {
	if err := s.faults.get("insert garage"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	s.byID[g.ID] = *g
	return nil
}

func (s *Garages) Update(_ context.Context, g *models.Garage) (*models.Garage, error) {
	if err := s.faults.get("update garage"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[g.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	updated := *g
	updated.CreatedAt = existing.CreatedAt
	s.byID[g.ID] = updated
	return &updated, nil
}

func (s *Garages) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := s.faults.get("delete garage"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Garages) FindByID(_ context.Context, id primitive.ObjectID) (*models.Garage, error) {
	if err := s.faults.get("find garage"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &g, nil
}

func (s *Garages) List(_ context.Context, f store.GarageFilter) ([]models.Garage, error) {
	if err := s.faults.get("list garages"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	garages := []models.Garage{}
	for _, g := range s.byID {
		if f.Category == "" || g.Category == f.Category {
			garages = append(garages, g)
		}
	}
	s.mu.RUnlock()

	switch f.Sort {
	case store.ByRecency:
		sort.SliceStable(garages, func(i, j int) bool {
			return garages[i].CreatedAt.After(garages[j].CreatedAt)
		})
	default:
		sort.SliceStable(garages, func(i, j int) bool {
			if garages[i].Rating != garages[j].Rating {
				return garages[i].Rating > garages[j].Rating
			}
			return garages[i].ReviewCount > garages[j].ReviewCount
		})
	}
	return limit(garages, f.Limit), nil
}

func (s *Garages) Count(_ context.Context, category string) (int64, error) {
	if err := s.faults.get("count garages"); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, g := range s.byID {
		if category == "" || g.Category == category {
			n++
		}
	}
	return n, nil
}

// ---------------- events ----------------

type Events struct {
	faults *faults
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]models.Event
}

func (s *Events) Insert(_ context.Context, e *models.Event) error {
	if err := s.faults.get("insert event"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.byID[e.ID] = *e
	return nil
}

func (s *Events) Update(_ context.Context, e *models.Event) (*models.Event, error) {
	if err := s.faults.get("update event"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[e.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	updated := *e
	updated.CreatedAt = existing.CreatedAt
	s.byID[e.ID] = updated
	return &updated, nil
}

func (s *Events) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := s.faults.get("delete event"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Events) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	if err := s.faults.get("find event"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &e, nil
}

func (s *Events) List(_ context.Context, f store.EventFilter) ([]models.Event, error) {
	if err := s.faults.get("list events"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	events := []models.Event{}
	for _, e := range s.byID {
		if onOrAfter(e.Date, f.From) {
			events = append(events, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return limit(events, f.Limit), nil
}

func (s *Events) Count(_ context.Context, from *time.Time) (int64, error) {
	if err := s.faults.get("count events"); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.byID {
		if onOrAfter(e.Date, from) {
			n++
		}
	}
	return n, nil
}

func onOrAfter(t time.Time, from *time.Time) bool {
	return from == nil || !t.Before(*from)
}

// ---------------- messages ----------------

type Messages struct {
	faults *faults
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]models.Message
}

func (s *Messages) Insert(_ context.Context, m *models.Message) error {
	if err := s.faults.get("insert message"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.LikedBy == nil {
		m.LikedBy = []string{}
	}
	stored := *m
	stored.LikedBy = append([]string{}, m.LikedBy...)
	s.byID[m.ID] = stored
	return nil
}

func (s *Messages) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := s.faults.get("delete message"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Messages) FindByID(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	if err := s.faults.get("find message"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	m.LikedBy = append([]string{}, m.LikedBy...)
	return &m, nil
}

func (s *Messages) List(_ context.Context, n int64) ([]models.Message, error) {
	if err := s.faults.get("list messages"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	messages := []models.Message{}
	for _, m := range s.byID {
		m.LikedBy = append([]string{}, m.LikedBy...)
		messages = append(messages, m)
	}
	s.mu.RUnlock()

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return limit(messages, n), nil
}

func (s *Messages) Like(_ context.Context, id primitive.ObjectID, userID string) (bool, error) {
	if err := s.faults.get("like message"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return false, apperr.ErrNotFound
	}
	if m.LikedByUser(userID) {
		return false, nil
	}
	m.LikedBy = append(append([]string{}, m.LikedBy...), userID)
	m.Likes++
	s.byID[id] = m
	return true, nil
}

// ---------------- site config ----------------

type SiteConfig struct {
	faults     *faults
	mu         sync.RWMutex
	background *models.Background
	banner     *models.EventBanner
}

func (s *SiteConfig) Background(_ context.Context) (*models.Background, error) {
	if err := s.faults.get("find background"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.background == nil {
		return nil, apperr.ErrNotFound
	}
	b := *s.background
	return &b, nil
}

func (s *SiteConfig) SetBackground(_ context.Context, b *models.Background) (*models.Background, error) {
	if err := s.faults.get("set background"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *b
	saved.ID = models.SingletonID
	s.background = &saved
	out := saved
	return &out, nil
}

func (s *SiteConfig) EventBanner(_ context.Context) (*models.EventBanner, error) {
	if err := s.faults.get("find event banner"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.banner == nil {
		return nil, apperr.ErrNotFound
	}
	b := *s.banner
	return &b, nil
}

func (s *SiteConfig) SetEventBanner(_ context.Context, b *models.EventBanner) (*models.EventBanner, error) {
	if err := s.faults.get("set event banner"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *b
	saved.ID = models.SingletonID
	s.banner = &saved
	out := saved
	return &out, nil
}

func limit[T any](items []T, n int64) []T {
	if n > 0 && int64(len(items)) > n {
		return items[:n]
	}
	return items
}
