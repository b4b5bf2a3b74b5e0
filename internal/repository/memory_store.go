package repository

import (
	"context"
	"sync"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

// table is a slice of rows looked up by linear scan.
type table[T any] struct {
	mu   sync.RWMutex
	rows []T
	key  func(T) string
}

func newTable[T any](seed []T, key func(T) string) *table[T] {
	return &table[T]{rows: append([]T(nil), seed...), key: key}
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]T(nil), t.rows...)
}

func (t *table[T]) find(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if t.key(row) == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) upsert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.key(row)
	for i := range t.rows {
		if t.key(t.rows[i]) == id {
			t.rows[i] = row
			return
		}
	}
	t.rows = append(t.rows, row)
}

func (t *table[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.key(t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return
		}
	}
}

// StudentStore keeps student records in memory.
type StudentStore struct {
	rows *table[domain.Student]
}

func NewStudentStore(seed []domain.Student) *StudentStore {
	return &StudentStore{rows: newTable(seed, func(s domain.Student) string { return s.ID })}
}

func (s *StudentStore) List(ctx context.Context) ([]domain.Student, error) {
	return s.rows.all(), nil
}

func (s *StudentStore) Get(ctx context.Context, id string) (*domain.Student, error) {
	student, ok := s.rows.find(id)
	if !ok {
		return nil, customError.WrapStudentNotFound(id)
	}
	return &student, nil
}

func (s *StudentStore) Save(ctx context.Context, student *domain.Student) error {
	s.rows.upsert(*student)
	return nil
}

func (s *StudentStore) Delete(ctx context.Context, id string) error {
	s.rows.remove(id)
	return nil
}

// FeeStore keeps the fee catalogue in memory.
type FeeStore struct {
	rows *table[domain.FeeComponent]
}

func NewFeeStore(seed []domain.FeeComponent) *FeeStore {
	return &FeeStore{rows: newTable(seed, func(f domain.FeeComponent) string { return f.ID })}
}

func (s *FeeStore) List(ctx context.Context) ([]domain.FeeComponent, error) {
	return s.rows.all(), nil
}

func (s *FeeStore) Get(ctx context.Context, id string) (*domain.FeeComponent, error) {
	fee, ok := s.rows.find(id)
	if !ok {
		return nil, customError.WrapFeeNotFound(id)
	}
	return &fee, nil
}

func (s *FeeStore) Save(ctx context.Context, fee *domain.FeeComponent) error {
	s.rows.upsert(*fee)
	return nil
}

func (s *FeeStore) Delete(ctx context.Context, id string) error {
	s.rows.remove(id)
	return nil
}

// PaymentStore is an append-only payment log in memory.
type PaymentStore struct {
	mu   sync.RWMutex
	rows []domain.Payment
}

func NewPaymentStore(seed []domain.Payment) *PaymentStore {
	return &PaymentStore{rows: append([]domain.Payment(nil), seed...)}
}

func (s *PaymentStore) Create(ctx context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *payment)
	return nil
}

func (s *PaymentStore) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Payment, 0, len(s.rows))
	for _, p := range s.rows {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

var (
	_ StudentRepository = (*StudentStore)(nil)
	_ FeeRepository     = (*FeeStore)(nil)
	_ PaymentRepository = (*PaymentStore)(nil)
)
