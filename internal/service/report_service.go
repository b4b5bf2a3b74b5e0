package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/internal/report"
	"github.com/channabasavaballolli/Edu-Pay/internal/repository"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

type ReportService struct {
	backend  gateway.API
	students repository.StudentRepository
	payments repository.PaymentRepository
	config   *config.Config
	now      func() time.Time
}

func NewReportService(
	backend gateway.API,
	students repository.StudentRepository,
	payments repository.PaymentRepository,
	config *config.Config,
) *ReportService {
	return &ReportService{
		backend:  backend,
		students: students,
		payments: payments,
		config:   config,
		now:      time.Now,
	}
}

// Dashboard builds the all-time admin snapshot.
func (s *ReportService) Dashboard(ctx context.Context) (*domain.ReportSnapshot, error) {
	return s.snapshot(ctx, "", "")
}

// snapshot builds the report for an optional YYYY-MM-DD range from the
// backend, or from local records when any backend call fails. Collections
// honour the range; pending dues and defaulters are always current.
func (s *ReportService) snapshot(ctx context.Context, from, to string) (*domain.ReportSnapshot, error) {
	start, end, err := utils.ParseDateRange(from, to)
	if err != nil {
		return nil, customError.WrapInvalidRequest(err.Error())
	}
	captured := domain.PaymentFilter{From: start, To: end}

	snap, err := s.backendSnapshot(ctx, from, to, captured)
	if err == nil {
		return snap, nil
	}
	logger.Warn(ctx, "backend report unavailable, aggregating local records",
		zap.String("kind", string(gateway.KindOf(err))),
		zap.String("from", from),
		zap.String("to", to),
		zap.Error(err),
	)
	return s.localSnapshot(ctx, captured)
}

// Defaulters lists students with overdue pending payments.
func (s *ReportService) Defaulters(ctx context.Context) ([]domain.Defaulter, error) {
	snap, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Defaulters, nil
}

// Export returns the backend's rendered report if it has one, otherwise a
// document rendered here from the snapshot for the requested range.
func (s *ReportService) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportDocument, error) {
	doc, err := s.backend.ExportReport(ctx, req)
	if err == nil {
		return doc, nil
	}
	logger.Warn(ctx, "backend export unavailable, rendering locally",
		zap.String("type", req.Type),
		zap.String("format", req.Format),
		zap.Error(err),
	)

	snap, err := s.snapshot(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}
	doc, err = report.Render(req, s.config.Reports.InstitutionName, *snap, s.now())
	if err != nil {
		return nil, customError.WrapInvalidRequest(err.Error())
	}
	return doc, nil
}

func (s *ReportService) localSnapshot(ctx context.Context, ranged domain.PaymentFilter) (*domain.ReportSnapshot, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.List(ctx, domain.PaymentFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	now := s.now()
	snap := report.Aggregate(payments, students, now)
	if ranged.From == nil && ranged.To == nil {
		return &snap, nil
	}

	inRange := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if ranged.Matches(p) {
			inRange = append(inRange, p)
		}
	}
	collected := report.Aggregate(inRange, students, now)
	snap.TotalCollection = collected.TotalCollection
	snap.StudentsPaid = collected.StudentsPaid
	snap.StudentsNotPaid = collected.StudentsNotPaid
	snap.CollectionByCourse = collected.CollectionByCourse
	snap.CollectionByYear = collected.CollectionByYear
	return &snap, nil
}

func (s *ReportService) backendSnapshot(ctx context.Context, from, to string, ranged domain.PaymentFilter) (*domain.ReportSnapshot, error) {
	data, err := s.backend.GetReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	students, err := s.backend.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	ranged.Status = "captured"
	captured, err := s.backend.ListPayments(ctx, ranged)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}

	snap := &domain.ReportSnapshot{
		TotalCollection:    utils.FromSubunits(data.TotalCollected),
		PendingDues:        decimal.Zero,
		TotalStudents:      len(students),
		CollectionByCourse: make([]domain.CourseAmount, 0, len(data.ByCourse)),
		CollectionByYear:   []domain.YearAmount{},
		Defaulters:         make([]domain.Defaulter, 0, len(data.Defaulters)),
	}

	for _, c := range data.ByCourse {
		snap.CollectionByCourse = append(snap.CollectionByCourse, domain.CourseAmount{
			Course: c.Course,
			Amount: utils.FromSubunits(c.Amount),
		})
	}
	sort.Slice(snap.CollectionByCourse, func(i, j int) bool {
		return snap.CollectionByCourse[i].Course < snap.CollectionByCourse[j].Course
	})

	for _, d := range data.Defaulters {
		id := d.StudentID.String()
		name, ok := names[id]
		if !ok || name == "" {
			name = gateway.FallbackStudentName(id)
		}
		amount := utils.FromSubunits(d.Amount)
		snap.PendingDues = snap.PendingDues.Add(amount)
		snap.Defaulters = append(snap.Defaulters, domain.Defaulter{
			StudentID:   id,
			StudentName: name,
			Amount:      amount,
		})
	}

	paid := make(map[string]struct{})
	byYear := make(map[string]decimal.Decimal)
	for _, p := range captured {
		paid[p.StudentID] = struct{}{}
		year := "Unknown"
		if !p.CreatedAt.IsZero() {
			year = strconv.Itoa(p.CreatedAt.Year())
		}
		byYear[year] = byYear[year].Add(p.Amount)
	}
	for year, amount := range byYear {
		snap.CollectionByYear = append(snap.CollectionByYear, domain.YearAmount{Year: year, Amount: amount})
	}
	sort.Slice(snap.CollectionByYear, func(i, j int) bool {
		return snap.CollectionByYear[i].Year < snap.CollectionByYear[j].Year
	})

	snap.StudentsPaid = len(paid)
	if notPaid := snap.TotalStudents - snap.StudentsPaid; notPaid > 0 {
		snap.StudentsNotPaid = notPaid
	}
	return snap, nil
}
