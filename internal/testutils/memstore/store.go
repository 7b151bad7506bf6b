// Package memstore in-memory реализация репозиториев и менеджера транзакций для тестов.
//
// Транзакции сериализуются глобальным мьютексом. Перед выполнением fn состояние
// копируется; если fn вернула ошибку, копия восстанавливается. FailOn позволяет
// вернуть ошибку из конкретной операции репозитория.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

type state struct {
	services      map[int64]domain.Service
	posts         map[int64]domain.Post
	clients       map[int64]domain.Client
	bookings      map[int64]domain.Booking
	notifications map[int64]domain.Notification
	seq           int64
}

func newState() *state {
	return &state{
		services:      make(map[int64]domain.Service),
		posts:         make(map[int64]domain.Post),
		clients:       make(map[int64]domain.Client),
		bookings:      make(map[int64]domain.Booking),
		notifications: make(map[int64]domain.Notification),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	c.seq = s.seq
	return c
}

// Store общее хранилище всех репозиториев
type Store struct {
	txMu sync.Mutex

	mu     sync.Mutex
	data   *state
	faults map[string]error
	calls  map[string]int

	now func() time.Time
}

// ErrForeignKey нарушение внешнего ключа схемы (SQLSTATE 23503)
var ErrForeignKey = errors.New("memstore: foreign key violation")

// New создает пустое хранилище
func New() *Store {
	return &Store{
		data:   newState(),
		faults: make(map[string]error),
		calls:  make(map[string]int),
		now:    time.Now,
	}
}

// SetNow подменяет часы, которыми проставляются created_at/updated_at
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// checkBookingRefs повторяет внешние ключи bookings. Вызывается под s.mu.
func (s *Store) checkBookingRefs(b *domain.Booking) error {
	if _, ok := s.data.clients[b.ClientID]; !ok {
		return fmt.Errorf("%w: client id=%d", ErrForeignKey, b.ClientID)
	}
	if _, ok := s.data.services[b.ServiceID]; !ok {
		return fmt.Errorf("%w: service id=%d", ErrForeignKey, b.ServiceID)
	}
	if _, ok := s.data.posts[b.PostID]; !ok {
		return fmt.Errorf("%w: post id=%d", ErrForeignKey, b.PostID)
	}
	return nil
}

// FailOn заставляет операцию op (например "client.Delete") возвращать err
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// Calls сколько раз вызывалась операция op
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter блокирует данные и проверяет внедренную ошибку для op
func (s *Store) enter(op string) error {
	s.mu.Lock()
	s.calls[op]++
	if err, ok := s.faults[op]; ok {
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) leave() {
	s.mu.Unlock()
}

func (s *Store) nextID() int64 {
	s.data.seq++
	return s.data.seq
}

// Repositories

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s: s} }

// Catalog репозиторий каталога
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// Clients репозиторий клиентов
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Notifications репозиторий уведомлений
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// TxManager менеджер транзакций
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// Seed helpers

// SeedService добавляет услугу без проверок
func (s *Store) SeedService(svc domain.Service) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.nextID()
	}
	s.data.services[svc.ID] = svc
	return &svc
}

// SeedPost добавляет пост без проверок
func (s *Store) SeedPost(p domain.Post) *domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID()
	}
	s.data.posts[p.ID] = p
	return &p
}

// SeedClient добавляет клиента без проверок
func (s *Store) SeedClient(c domain.Client) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	s.data.clients[c.ID] = c
	return &c
}

// SeedBooking добавляет бронирование без проверок
func (s *Store) SeedBooking(b domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextID()
	}
	if b.EndAt.IsZero() {
		b.EndAt = b.StartAt.Add(b.Duration())
	}
	if b.Status == "" {
		b.Status = domain.StatusPending
	}
	s.data.bookings[b.ID] = b
	return &b
}

// SeedNotification добавляет уведомление без проверок
func (s *Store) SeedNotification(n domain.Notification) *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == 0 {
		n.ID = s.nextID()
	}
	s.data.notifications[n.ID] = n
	return &n
}

// Inspection helpers

// AllBookings все бронирования по возрастанию ID
func (s *Store) AllBookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, 0, len(s.data.bookings))
	for _, b := range s.data.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllClients все клиенты по возрастанию ID
func (s *Store) AllClients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Client, 0, len(s.data.clients))
	for _, c := range s.data.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllNotifications все уведомления по возрастанию ID
func (s *Store) AllNotifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, 0, len(s.data.notifications))
	for _, n := range s.data.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TxManager транзакции поверх Store

type txKey struct{}

// TxManager реализует Do, DoSerializable и DoReadOnly
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.data.clone()
	m.s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snapshot)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) restore(snapshot *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
}
