package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

const unknownKey = "Unknown"

// Aggregate derives a snapshot from payment records and the student roster.
// A pending payment whose due date cannot be read counts as overdue.
func Aggregate(payments []domain.Payment, students []domain.Student, now time.Time) domain.ReportSnapshot {
	byID := make(map[string]domain.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	snap := domain.ReportSnapshot{
		TotalCollection: decimal.Zero,
		PendingDues:     decimal.Zero,
		TotalStudents:   len(students),
	}

	paidStudents := make(map[string]struct{})
	byCourse := make(map[string]decimal.Decimal)
	byYear := make(map[string]decimal.Decimal)
	overdue := make(map[string]decimal.Decimal)

	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusPaid:
			snap.TotalCollection = snap.TotalCollection.Add(p.Amount)
			paidStudents[p.StudentID] = struct{}{}

			s, ok := byID[p.StudentID]
			course, year := unknownKey, unknownKey
			if ok {
				course = keyOrUnknown(s.Course)
				year = keyOrUnknown(s.Year)
			}
			byCourse[course] = byCourse[course].Add(p.Amount)
			byYear[year] = byYear[year].Add(p.Amount)

		case domain.PaymentStatusPending:
			snap.PendingDues = snap.PendingDues.Add(p.Amount)
			if due, ok := utils.ParseTimestamp(p.DueDate); !ok || utils.IsDateOverdue(due, now) {
				overdue[p.StudentID] = overdue[p.StudentID].Add(p.Amount)
			}
		}
	}

	snap.StudentsPaid = len(paidStudents)
	snap.StudentsNotPaid = snap.TotalStudents - snap.StudentsPaid
	if snap.StudentsNotPaid < 0 {
		snap.StudentsNotPaid = 0
	}

	snap.CollectionByCourse = make([]domain.CourseAmount, 0, len(byCourse))
	for _, course := range sortedKeys(byCourse) {
		snap.CollectionByCourse = append(snap.CollectionByCourse, domain.CourseAmount{Course: course, Amount: byCourse[course]})
	}

	snap.CollectionByYear = make([]domain.YearAmount, 0, len(byYear))
	for _, year := range sortedKeys(byYear) {
		snap.CollectionByYear = append(snap.CollectionByYear, domain.YearAmount{Year: year, Amount: byYear[year]})
	}

	snap.Defaulters = make([]domain.Defaulter, 0, len(overdue))
	for _, id := range sortedKeys(overdue) {
		name := ""
		if s, ok := byID[id]; ok {
			name = s.Name
		}
		snap.Defaulters = append(snap.Defaulters, domain.Defaulter{StudentID: id, StudentName: name, Amount: overdue[id]})
	}

	return snap
}

func keyOrUnknown(key string) string {
	if key == "" {
		return unknownKey
	}
	return key
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
