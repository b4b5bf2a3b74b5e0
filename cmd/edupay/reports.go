package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show collection totals and student counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.Reports.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Fee Collection")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  Collected:   %s\n", snap.TotalCollection.StringFixed(2))
			fmt.Fprintf(out, "  Pending:     %s\n", snap.PendingDues.StringFixed(2))
			fmt.Fprintf(out, "  Students:    %d (%d paid, %d not paid)\n", snap.TotalStudents, snap.StudentsPaid, snap.StudentsNotPaid)

			if len(snap.CollectionByCourse) > 0 {
				fmt.Fprintln(out, "\nBy course:")
				for _, c := range snap.CollectionByCourse {
					fmt.Fprintf(out, "  %-20s %s\n", c.Course, c.Amount.StringFixed(2))
				}
			}
			if len(snap.CollectionByYear) > 0 {
				fmt.Fprintln(out, "\nBy year:")
				for _, y := range snap.CollectionByYear {
					fmt.Fprintf(out, "  %-20s %s\n", y.Year, y.Amount.StringFixed(2))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log backend fallbacks to stderr")
	return cmd
}

func defaultersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaulters",
		Short: "List students with overdue fees",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			defaulters, err := a.Reports.Defaulters(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(defaulters) == 0 {
				fmt.Fprintln(out, "No overdue fees")
				return nil
			}
			for _, d := range defaulters {
				fmt.Fprintf(out, "%-8s %-24s %s\n", d.StudentID, d.StudentName, d.Amount.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log backend fallbacks to stderr")
	return cmd
}

func exportCmd() *cobra.Command {
	var req domain.ExportRequest
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a fee report as CSV or printable document",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch req.Type {
			case domain.ReportDaily, domain.ReportWeekly, domain.ReportYearly:
			default:
				return fmt.Errorf("--type must be daily, weekly or yearly")
			}
			if req.Format != domain.FormatCSV && req.Format != domain.FormatPDF {
				return fmt.Errorf("--format must be csv or pdf")
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.Reports.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = doc.Filename
			}
			if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes, source %s)\n", path, len(doc.Body), doc.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Type, "type", "t", domain.ReportDaily, "Report type (daily, weekly, yearly)")
	cmd.Flags().StringVarP(&req.Format, "format", "f", domain.FormatCSV, "File format (csv, pdf)")
	cmd.Flags().StringVar(&req.From, "from", "", "Start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.To, "to", "", "End date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to the report filename)")
	cmd.Flags().BoolP("verbose", "v", false, "Log backend fallbacks to stderr")
	return cmd
}
