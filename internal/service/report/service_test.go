package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubPayroll struct {
	dashboard payroll.DashboardResponse
	weekly    payroll.WeeklyGrossResponse
	err       error
	gotWeek   time.Time
}

func (s *stubPayroll) GetDashboard(ctx context.Context, sel payroll.PeriodSelection) (payroll.DashboardResponse, error) {
	return s.dashboard, s.err
}

func (s *stubPayroll) GetWeeklyGross(ctx context.Context, week time.Time) (payroll.WeeklyGrossResponse, error) {
	s.gotWeek = week
	return s.weekly, s.err
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func weekGrid() payroll.WeeklyGrossResponse {
	truck := "T-7"
	days := make([]payroll.DailyGross, 7)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := range days {
		days[i] = payroll.DailyGross{Date: payroll.FormatDate(start.AddDate(0, 0, i)), Total: decimal.Zero}
	}
	days[0].Total = money("1200.50")
	days[3].Total = money("800")

	return payroll.WeeklyGrossResponse{
		WeekStart: "2025-03-10",
		WeekEnd:   "2025-03-16",
		Rows: []payroll.WeeklyGrossRow{{
			DriverID:    "d-1",
			DriverName:  "Alice",
			TruckNumber: &truck,
			Days:        days,
			WeeklyTotal: money("2000.50"),
		}},
	}
}

func TestReportService_ExportWeeklyGross(t *testing.T) {
	stub := &stubPayroll{weekly: weekGrid()}
	svc := NewReportService(stub)

	week := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	file, err := svc.ExportWeeklyGross(context.Background(), week)
	require.NoError(t, err)

	assert.Equal(t, week, stub.gotWeek)
	assert.Equal(t, "weekly-gross-2025-03-10.xlsx", file.Name)
	assert.Equal(t, report.ContentTypeXLSX, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{weeklySheet}, f.GetSheetList())

	rows, err := f.GetRows(weeklySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Truck", rows[0][0])
	assert.Equal(t, "Mon 2025-03-10", rows[0][2])
	assert.Equal(t, "Sun 2025-03-16", rows[0][8])
	assert.Equal(t, "Weekly Total", rows[0][9])

	assert.Equal(t, "T-7", rows[1][0])
	assert.Equal(t, "Alice", rows[1][1])
	assert.Equal(t, "1200.5", rows[1][2])
	assert.Equal(t, "800", rows[1][5])
	assert.Equal(t, "2000.5", rows[1][9])
}

func TestReportService_ExportWeeklyGross_NoDrivers(t *testing.T) {
	svc := NewReportService(&stubPayroll{weekly: payroll.WeeklyGrossResponse{WeekStart: "2025-03-10", WeekEnd: "2025-03-16"}})

	file, err := svc.ExportWeeklyGross(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(weeklySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Truck", "Driver", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Weekly Total"}, rows[0])
}

func TestReportService_ExportStatement(t *testing.T) {
	truck := "T-7"
	stub := &stubPayroll{dashboard: payroll.DashboardResponse{
		Period: payroll.PeriodResponse{Type: "week", Start: "2025-03-10", End: "2025-03-16"},
		Summary: payroll.Summary{
			FullLoadCommission:    money("100"),
			PartialLoadCommission: money("10"),
			TotalBonuses:          money("30"),
			TotalSalary:           money("140"),
		},
		DriverPerformance: []payroll.DriverPerformance{{
			DriverID:    "d-1",
			DriverName:  "Alice",
			DriverType:  "company_driver",
			TruckNumber: &truck,
			TotalGross:  money("10500"),
			LoadCount:   2,
			Eligibility: payroll.Eligibility{BonusAmount: money("30")},
		}},
		CalculatedAt: "2025-03-20T08:00:00Z",
	}}
	svc := NewReportService(stub)

	file, err := svc.ExportStatement(context.Background(), payroll.PeriodSelection{})
	require.NoError(t, err)

	assert.Equal(t, "payroll-statement-2025-03-10-2025-03-16.pdf", file.Name)
	assert.Equal(t, report.ContentTypePDF, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestReportService_PropagatesPayrollError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewReportService(&stubPayroll{err: boom})

	_, err := svc.ExportStatement(context.Background(), payroll.PeriodSelection{})
	assert.ErrorIs(t, err, boom)

	_, err = svc.ExportWeeklyGross(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
}
