package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// SourceLocal marks documents rendered by the portal itself.
const SourceLocal = "local"

const (
	sectionSummary   = "Summary"
	sectionCourse    = "Course"
	sectionDefaulter = "Defaulter"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WriteCSV writes the Section,Key,Value report layout.
func WriteCSV(w io.Writer, snap domain.ReportSnapshot) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Section", "Key", "Value"},
		{sectionSummary, "TotalCollected", money(snap.TotalCollection)},
		{sectionSummary, "PendingDues", money(snap.PendingDues)},
		{sectionSummary, "TotalStudents", strconv.Itoa(snap.TotalStudents)},
		{sectionSummary, "StudentsPaid", strconv.Itoa(snap.StudentsPaid)},
		{sectionSummary, "StudentsNotPaid", strconv.Itoa(snap.StudentsNotPaid)},
		{sectionCourse, "Name", "Amount"},
	}
	for _, c := range snap.CollectionByCourse {
		rows = append(rows, []string{sectionCourse, c.Course, money(c.Amount)})
	}
	rows = append(rows, []string{sectionDefaulter, "StudentId", "Amount"})
	for _, d := range snap.Defaulters {
		rows = append(rows, []string{sectionDefaulter, d.StudentID, money(d.Amount)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ParseCSV reads back a report written by WriteCSV. Unknown sections are skipped.
func ParseCSV(r io.Reader) (*domain.ReportSnapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	snap := &domain.ReportSnapshot{
		CollectionByCourse: []domain.CourseAmount{},
		Defaulters:         []domain.Defaulter{},
	}
	for i, rec := range records {
		section, key, value := rec[0], rec[1], rec[2]
		if i == 0 && section == "Section" {
			continue
		}

		switch section {
		case sectionSummary:
			if err := parseSummary(snap, key, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		case sectionCourse:
			if key == "Name" && value == "Amount" {
				continue
			}
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			snap.CollectionByCourse = append(snap.CollectionByCourse, domain.CourseAmount{Course: key, Amount: amount})
		case sectionDefaulter:
			if key == "StudentId" && value == "Amount" {
				continue
			}
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			snap.Defaulters = append(snap.Defaulters, domain.Defaulter{StudentID: key, Amount: amount})
		}
	}
	return snap, nil
}

func parseSummary(snap *domain.ReportSnapshot, key, value string) error {
	switch key {
	case "TotalCollected", "PendingDues":
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return err
		}
		if key == "TotalCollected" {
			snap.TotalCollection = amount
		} else {
			snap.PendingDues = amount
		}
	case "TotalStudents", "StudentsPaid", "StudentsNotPaid":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		switch key {
		case "TotalStudents":
			snap.TotalStudents = n
		case "StudentsPaid":
			snap.StudentsPaid = n
		default:
			snap.StudentsNotPaid = n
		}
	}
	return nil
}

var printable = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": money,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Institution}} - {{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 32px; color: #222; }
h1 { font-size: 20px; margin-bottom: 4px; }
h2 { font-size: 16px; margin-top: 24px; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
td.amount { text-align: right; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Institution}}</h1>
<p>{{.Title}} &middot; generated {{.Generated}}{{if .Period}} &middot; {{.Period}}{{end}}</p>

<h2>Summary</h2>
<table>
<tr><th>Total collected</th><td class="amount">{{money .Snapshot.TotalCollection}}</td></tr>
<tr><th>Pending dues</th><td class="amount">{{money .Snapshot.PendingDues}}</td></tr>
<tr><th>Students</th><td class="amount">{{.Snapshot.TotalStudents}}</td></tr>
<tr><th>Paid</th><td class="amount">{{.Snapshot.StudentsPaid}}</td></tr>
<tr><th>Not paid</th><td class="amount">{{.Snapshot.StudentsNotPaid}}</td></tr>
</table>

<h2>Collection by course</h2>
<table>
<tr><th>Course</th><th>Amount</th></tr>
{{range .Snapshot.CollectionByCourse}}<tr><td>{{.Course}}</td><td class="amount">{{money .Amount}}</td></tr>
{{else}}<tr><td colspan="2">No collections</td></tr>
{{end}}</table>

<h2>Collection by year</h2>
<table>
<tr><th>Year</th><th>Amount</th></tr>
{{range .Snapshot.CollectionByYear}}<tr><td>{{.Year}}</td><td class="amount">{{money .Amount}}</td></tr>
{{else}}<tr><td colspan="2">No collections</td></tr>
{{end}}</table>

<h2>Defaulters</h2>
<table>
<tr><th>Student</th><th>Name</th><th>Amount</th></tr>
{{range .Snapshot.Defaulters}}<tr><td>{{.StudentID}}</td><td>{{.StudentName}}</td><td class="amount">{{money .Amount}}</td></tr>
{{else}}<tr><td colspan="3">None</td></tr>
{{end}}</table>
</body>
</html>
`))

type printableData struct {
	Institution string
	Title       string
	Generated   string
	Period      string
	Snapshot    domain.ReportSnapshot
}

// WriteHTML renders the printable report document.
func WriteHTML(w io.Writer, institution string, req domain.ExportRequest, snap domain.ReportSnapshot, now time.Time) error {
	period := ""
	if req.From != "" || req.To != "" {
		period = strings.TrimSpace(req.From + " to " + req.To)
	}

	title := "Fee collection report"
	if req.Type != "" {
		title = strings.ToUpper(req.Type[:1]) + req.Type[1:] + " fee collection report"
	}

	data := printableData{
		Institution: institution,
		Title:       title,
		Generated:   now.Format("2006-01-02 15:04"),
		Period:      period,
		Snapshot:    snap,
	}
	if err := printable.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Render produces the downloadable document for req. PDF requests get the
// printable HTML document, which the browser prints to PDF.
func Render(req domain.ExportRequest, institution string, snap domain.ReportSnapshot, now time.Time) (*domain.ExportDocument, error) {
	var buf bytes.Buffer

	switch req.Format {
	case domain.FormatCSV:
		if err := WriteCSV(&buf, snap); err != nil {
			return nil, err
		}
		return &domain.ExportDocument{
			Filename:    domain.ExportFilename(req.Type, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Body:        buf.Bytes(),
			Source:      SourceLocal,
		}, nil
	case domain.FormatPDF:
		if err := WriteHTML(&buf, institution, req, snap, now); err != nil {
			return nil, err
		}
		return &domain.ExportDocument{
			Filename:    domain.ExportFilename(req.Type, "html"),
			ContentType: "text/html; charset=utf-8",
			Body:        buf.Bytes(),
			Source:      SourceLocal,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", req.Format)
	}
}
