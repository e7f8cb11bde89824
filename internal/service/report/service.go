package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/report"
	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	payrollService payroll.PayrollService
}

func NewReportService(payrollService payroll.PayrollService) report.ReportService {
	return &ReportServiceImpl{payrollService: payrollService}
}

const weeklySheet = "Weekly Gross"

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (s *ReportServiceImpl) ExportWeeklyGross(ctx context.Context, week time.Time) (report.File, error) {
	grid, err := s.payrollService.GetWeeklyGross(ctx, week)
	if err != nil {
		return report.File{}, err
	}

	content, err := renderWeeklyGross(grid)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to render weekly gross workbook: %w", err)
	}

	return report.File{
		Name:        fmt.Sprintf("weekly-gross-%s.xlsx", grid.WeekStart),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}

func renderWeeklyGross(grid payroll.WeeklyGrossResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(weeklySheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []interface{}{"Truck", "Driver"}
	if len(grid.Rows) > 0 {
		for i, day := range grid.Rows[0].Days {
			header = append(header, fmt.Sprintf("%s %s", weekdays[i], day.Date))
		}
	} else {
		for _, name := range weekdays {
			header = append(header, name)
		}
	}
	header = append(header, "Weekly Total")

	if err := f.SetSheetRow(weeklySheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range grid.Rows {
		truck := ""
		if row.TruckNumber != nil {
			truck = *row.TruckNumber
		}
		values := []interface{}{truck, row.DriverName}
		for _, day := range row.Days {
			values = append(values, day.Total.InexactFloat64())
		}
		values = append(values, row.WeeklyTotal.InexactFloat64())

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(weeklySheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if len(grid.Rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), len(grid.Rows)+1)
		if err != nil {
			return nil, err
		}
		style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(weeklySheet, "C2", last, style); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(weeklySheet, "B", "B", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportServiceImpl) ExportStatement(ctx context.Context, sel payroll.PeriodSelection) (report.File, error) {
	dashboard, err := s.payrollService.GetDashboard(ctx, sel)
	if err != nil {
		return report.File{}, err
	}

	content, err := renderStatement(dashboard)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to render payroll statement: %w", err)
	}

	return report.File{
		Name:        fmt.Sprintf("payroll-statement-%s-%s.pdf", dashboard.Period.Start, dashboard.Period.End),
		ContentType: report.ContentTypePDF,
		Content:     content,
	}, nil
}

func renderStatement(d payroll.DashboardResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payroll Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYROLL STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Period      : %s to %s", d.Period.Start, d.Period.End))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated   : "+d.CalculatedAt)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Revenue")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line(pdf, "Full loads gross", "$"+d.Metrics.FullLoadsGross.StringFixed(2))
	line(pdf, "Partial loads gross", "$"+d.Metrics.PartialLoadsGross.StringFixed(2))
	line(pdf, "Total gross", "$"+d.Metrics.TotalGross.StringFixed(2))
	line(pdf, "Loads", fmt.Sprintf("%d", d.Metrics.LoadCount))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Salary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line(pdf, "Full load commission (1%)", "$"+d.Summary.FullLoadCommission.StringFixed(2))
	line(pdf, "Partial load commission (2%)", "$"+d.Summary.PartialLoadCommission.StringFixed(2))
	line(pdf, "Bonuses", "$"+d.Summary.TotalBonuses.StringFixed(2))
	pdf.SetFont("Helvetica", "B", 11)
	line(pdf, "Total salary", "$"+d.Summary.TotalSalary.StringFixed(2))
	pdf.Ln(4)

	if len(d.DriverPerformance) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Drivers")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range []string{"Driver", "Type", "Loads", "Gross", "Bonus"} {
			pdf.CellFormat(driverColumns[i], 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, p := range d.DriverPerformance {
			cells := []string{
				p.DriverName,
				p.DriverType,
				fmt.Sprintf("%d", p.LoadCount),
				"$" + p.TotalGross.StringFixed(2),
				"$" + p.BonusAmount.StringFixed(2),
			}
			for i, c := range cells {
				pdf.CellFormat(driverColumns[i], 7, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var driverColumns = []float64{60, 40, 20, 35, 35}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(90, 6, label)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}
