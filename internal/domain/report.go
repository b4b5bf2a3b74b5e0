package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CourseAmount struct {
	Course string          `json:"course"`
	Amount decimal.Decimal `json:"amount"`
}

type YearAmount struct {
	Year   string          `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// Defaulter is a student with pending dues.
type Defaulter struct {
	StudentID   string          `json:"studentId"`
	StudentName string          `json:"studentName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportSnapshot is derived on demand and never stored.
type ReportSnapshot struct {
	TotalCollection    decimal.Decimal `json:"totalCollection"`
	PendingDues        decimal.Decimal `json:"pendingDues"`
	TotalStudents      int             `json:"totalStudents"`
	StudentsPaid       int             `json:"studentsPaid"`
	StudentsNotPaid    int             `json:"studentsNotPaid"`
	CollectionByCourse []CourseAmount  `json:"collectionByCourse"`
	CollectionByYear   []YearAmount    `json:"collectionByYear"`
	Defaulters         []Defaulter     `json:"defaulters"`
}

const (
	ReportDaily  = "daily"
	ReportWeekly = "weekly"
	ReportYearly = "yearly"

	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportRequest selects a report period and file format.
type ExportRequest struct {
	Type   string `json:"type" validate:"required,oneof=daily weekly yearly"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// ExportDocument is a rendered report ready to download.
type ExportDocument struct {
	Filename    string
	ContentType string
	Body        []byte
	Source      string
}

// ExportFilename names a report download, e.g. BEC_daily_report.csv.
func ExportFilename(reportType, ext string) string {
	return fmt.Sprintf("BEC_%s_report.%s", reportType, ext)
}
