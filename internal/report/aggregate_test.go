package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

func students() []domain.Student {
	return []domain.Student{
		{ID: "1", Name: "Rahul Sharma", Course: "B.Tech", Year: "3rd Year"},
		{ID: "2", Name: "Priya Singh", Course: "B.Tech", Year: "3rd Year"},
		{ID: "3", Name: "Amit Patel", Course: "B.Tech", Year: "2nd Year"},
	}
}

func payments() []domain.Payment {
	return []domain.Payment{
		{ID: "1", StudentID: "1", Amount: decimal.NewFromInt(56000), Status: domain.PaymentStatusPaid, PaymentDate: "2025-01-15", DueDate: "2025-01-31"},
		{ID: "2", StudentID: "2", Amount: decimal.NewFromInt(56000), Status: domain.PaymentStatusPending, DueDate: "2025-01-31"},
		{ID: "3", StudentID: "3", Amount: decimal.NewFromInt(56000), Status: domain.PaymentStatusPending, DueDate: "2025-01-31"},
	}
}

func TestAggregate_PaidAndPending(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	snap := Aggregate(payments(), students(), now)

	assert.Equal(t, 3, snap.TotalStudents)
	assert.Equal(t, 1, snap.StudentsPaid)
	assert.Equal(t, 2, snap.StudentsNotPaid)
	assert.True(t, snap.TotalCollection.Equal(decimal.NewFromInt(56000)))
	assert.True(t, snap.PendingDues.Equal(decimal.NewFromInt(112000)))

	require.Len(t, snap.CollectionByCourse, 1)
	assert.Equal(t, "B.Tech", snap.CollectionByCourse[0].Course)
	assert.True(t, snap.CollectionByCourse[0].Amount.Equal(decimal.NewFromInt(56000)))

	require.Len(t, snap.CollectionByYear, 1)
	assert.Equal(t, "3rd Year", snap.CollectionByYear[0].Year)

	require.Len(t, snap.Defaulters, 2)
	assert.Equal(t, "2", snap.Defaulters[0].StudentID)
	assert.Equal(t, "Priya Singh", snap.Defaulters[0].StudentName)
	assert.Equal(t, "3", snap.Defaulters[1].StudentID)
}

func TestAggregate_NotYetDueIsNotDefaulter(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	snap := Aggregate(payments(), students(), now)

	assert.Empty(t, snap.Defaulters)
	assert.True(t, snap.PendingDues.Equal(decimal.NewFromInt(112000)))
}

func TestAggregate_FailedPaymentsIgnored(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	rows := append(payments(), domain.Payment{
		ID: "4", StudentID: "2", Amount: decimal.NewFromInt(56000), Status: domain.PaymentStatusFailed,
	})

	snap := Aggregate(rows, students(), now)

	assert.True(t, snap.TotalCollection.Equal(decimal.NewFromInt(56000)))
	assert.True(t, snap.PendingDues.Equal(decimal.NewFromInt(112000)))
	assert.Equal(t, 1, snap.StudentsPaid)
}

func TestAggregate_Empty(t *testing.T) {
	snap := Aggregate(nil, nil, time.Now())

	assert.True(t, snap.TotalCollection.IsZero())
	assert.Equal(t, 0, snap.StudentsNotPaid)
	assert.NotNil(t, snap.CollectionByCourse)
	assert.NotNil(t, snap.Defaulters)
}

func TestAggregate_UnknownStudentGroupsUnderUnknown(t *testing.T) {
	rows := []domain.Payment{
		{ID: "9", StudentID: "42", Amount: decimal.NewFromInt(100), Status: domain.PaymentStatusPaid},
	}

	snap := Aggregate(rows, students(), time.Now())

	require.Len(t, snap.CollectionByCourse, 1)
	assert.Equal(t, "Unknown", snap.CollectionByCourse[0].Course)
	assert.Equal(t, 2, snap.StudentsNotPaid)
}
