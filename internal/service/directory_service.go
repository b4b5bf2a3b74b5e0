package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/internal/repository"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
)

// DirectoryService serves students, fees and payment listings. Each call goes
// to the backend first and falls back to the local stores when it fails.
// Backend results are mirrored into the stores.
type DirectoryService struct {
	backend  gateway.API
	students repository.StudentRepository
	fees     repository.FeeRepository
	payments repository.PaymentRepository
}

func NewDirectoryService(
	backend gateway.API,
	students repository.StudentRepository,
	fees repository.FeeRepository,
	payments repository.PaymentRepository,
) *DirectoryService {
	return &DirectoryService{
		backend:  backend,
		students: students,
		fees:     fees,
		payments: payments,
	}
}

func degrade(ctx context.Context, op string, err error) {
	logger.Warn(ctx, "backend unavailable, using local data",
		zap.String("op", op),
		zap.String("kind", string(gateway.KindOf(err))),
		zap.Error(err),
	)
}

func (s *DirectoryService) mirror(ctx context.Context, student domain.Student) {
	if err := s.students.Save(ctx, &student); err != nil {
		logger.Warn(ctx, "failed to mirror student", zap.String("studentId", student.ID), zap.Error(err))
	}
}

func (s *DirectoryService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.backend.ListStudents(ctx)
	if err == nil {
		for _, student := range students {
			s.mirror(ctx, student)
		}
		return students, nil
	}

	degrade(ctx, "list_students", err)
	students, err = s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withOutstanding(ctx, students)
}

func (s *DirectoryService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.backend.GetStudent(ctx, id)
	if err == nil {
		s.mirror(ctx, *student)
		return student, nil
	}

	degrade(ctx, "get_student", err)
	student, err = s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	withBalance, err := s.withOutstanding(ctx, []domain.Student{*student})
	if err != nil {
		return nil, err
	}
	return &withBalance[0], nil
}

func (s *DirectoryService) CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error) {
	student, err := s.backend.CreateStudent(ctx, in)
	if err != nil {
		degrade(ctx, "create_student", err)
		created := in.ToStudent(uuid.NewString())
		student = &created
	}
	if err := s.students.Save(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *DirectoryService) UpdateStudent(ctx context.Context, id string, patch domain.StudentPatch) (*domain.Student, error) {
	current, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	next := patch.Apply(*current)

	updated, err := s.backend.UpdateStudent(ctx, id, next)
	if err != nil {
		degrade(ctx, "update_student", err)
		updated = &next
	}
	if err := s.students.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DirectoryService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.backend.DeleteStudent(ctx, id); err != nil {
		degrade(ctx, "delete_student", err)
	}
	return s.students.Delete(ctx, id)
}

func (s *DirectoryService) ListFees(ctx context.Context) ([]domain.FeeComponent, error) {
	fees, err := s.backend.ListFees(ctx)
	if err == nil {
		for i := range fees {
			if err := s.fees.Save(ctx, &fees[i]); err != nil {
				logger.Warn(ctx, "failed to mirror fee", zap.String("feeId", fees[i].ID), zap.Error(err))
			}
		}
		return fees, nil
	}

	degrade(ctx, "list_fees", err)
	return s.fees.List(ctx)
}

func (s *DirectoryService) CreateFee(ctx context.Context, in domain.FeeInput) (*domain.FeeComponent, error) {
	fee, err := s.backend.CreateFee(ctx, in)
	if err != nil {
		degrade(ctx, "create_fee", err)
		fee = &domain.FeeComponent{
			ID:        uuid.NewString(),
			Component: in.Component,
			Amount:    in.Amount,
			Mandatory: in.Mandatory,
		}
	}
	if err := s.fees.Save(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

func (s *DirectoryService) UpdateFee(ctx context.Context, id string, patch domain.FeePatch) (*domain.FeeComponent, error) {
	fee, err := s.backend.UpdateFee(ctx, id, patch)
	if err != nil {
		degrade(ctx, "update_fee", err)
		current, err := s.fees.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next := patch.Apply(*current)
		fee = &next
	}
	if err := s.fees.Save(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

func (s *DirectoryService) DeleteFee(ctx context.Context, id string) error {
	if err := s.backend.DeleteFee(ctx, id); err != nil {
		degrade(ctx, "delete_fee", err)
	}
	return s.fees.Delete(ctx, id)
}

// BuildSelection starts from the current catalogue, with mandatory fees
// preselected, and adds feeIDs.
func (s *DirectoryService) BuildSelection(ctx context.Context, feeIDs []string) (*domain.FeeSelection, error) {
	fees, err := s.ListFees(ctx)
	if err != nil {
		return nil, err
	}
	selection := domain.NewFeeSelection(fees)
	for _, id := range feeIDs {
		if err := selection.Select(id); err != nil {
			return nil, err
		}
	}
	return selection, nil
}

// ListPayments returns payments matching filter with payer names resolved.
// The backend has no text search, so Query is applied here.
func (s *DirectoryService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	payments, err := s.backend.ListPayments(ctx, filter)
	if err != nil {
		degrade(ctx, "list_payments", err)
		return s.payments.List(ctx, filter)
	}

	s.resolveNames(ctx, payments)

	if strings.TrimSpace(filter.Query) == "" {
		return payments, nil
	}
	matched := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *DirectoryService) resolveNames(ctx context.Context, payments []domain.Payment) {
	names := make(map[string]string)
	for i := range payments {
		id := payments[i].StudentID
		if payments[i].StudentName != gateway.FallbackStudentName(id) {
			continue
		}
		name, seen := names[id]
		if !seen {
			if student, err := s.GetStudent(ctx, id); err == nil && student.Name != "" {
				name = student.Name
			}
			names[id] = name
		}
		if name != "" {
			payments[i].StudentName = name
		}
	}
}

// withOutstanding fills in missing balances from pending local payments.
func (s *DirectoryService) withOutstanding(ctx context.Context, students []domain.Student) ([]domain.Student, error) {
	pending, err := s.payments.List(ctx, domain.PaymentFilter{Status: domain.PaymentStatusPending})
	if err != nil {
		return nil, err
	}
	due := make(map[string]decimal.Decimal)
	for _, p := range pending {
		due[p.StudentID] = due[p.StudentID].Add(p.Amount)
	}

	out := make([]domain.Student, len(students))
	for i, student := range students {
		if student.Outstanding == nil {
			amount := due[student.ID]
			student.Outstanding = &amount
		}
		out[i] = student
	}
	return out, nil
}
