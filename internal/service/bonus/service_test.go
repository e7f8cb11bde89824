package bonus

import (
	"context"
	"testing"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(f *fixture) bonus.BonusService {
	return NewBonusService(f.bonuses, f.loads, f.drivers, NewReconciler(f.bonuses, nil, fixedNow))
}

func ownerContext() context.Context {
	return jwt.WithUserID(context.Background(), owner)
}

func TestBonusService_CreateManualAlignsWeek(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	d := f.driver(t, "Alice", driver.DriverTypeCompany)

	resp, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		DriverID:  &d.ID,
		Amount:    decimal.NewFromInt(40),
		WeekStart: "2025-03-13",
		Date:      "2025-03-13",
		Note:      "Holiday run",
	})
	require.NoError(t, err)

	assert.Equal(t, string(bonus.BonusTypeManual), resp.BonusType)
	assert.Equal(t, "2025-03-10", resp.WeekStart)
	assert.Equal(t, "2025-03-13", resp.Date)
	assert.NotEmpty(t, resp.ID)
}

func TestBonusService_CreateValidation(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		Amount:    decimal.Zero,
		WeekStart: "10/03/2025",
		Date:      "2025-03-10",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "amount")
	assert.Contains(t, verrs.ToMap(), "week_start")
}

func TestBonusService_CreateUnknownDriver(t *testing.T) {
	svc := newTestService(newFixture())
	missing := "missing"

	_, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		DriverID:  &missing,
		Amount:    decimal.NewFromInt(10),
		WeekStart: "2025-03-10",
		Date:      "2025-03-10",
	})
	assert.ErrorIs(t, err, driver.ErrDriverNotFound)
}

func TestBonusService_AutomaticBonusIsReadOnly(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	d := f.driver(t, "Alice", driver.DriverTypeCompany)
	f.load(t, "L-1", d.ID, weekStart, "10000")

	_, err := svc.Reconcile(ownerContext(), payroll.PeriodSelection{Week: today})
	require.NoError(t, err)
	rows := f.automatic(t)
	require.Len(t, rows, 1)

	amount := decimal.NewFromInt(999)
	_, err = svc.Update(ownerContext(), bonus.UpdateBonusRequest{ID: rows[0].ID, Amount: &amount})
	assert.ErrorIs(t, err, bonus.ErrAutomaticBonusReadOnly)
}

func TestBonusService_UpdateManual(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)

	created, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		Amount:    decimal.NewFromInt(40),
		WeekStart: "2025-03-10",
		Date:      "2025-03-10",
	})
	require.NoError(t, err)

	amount := decimal.NewFromInt(60)
	note := "Adjusted"
	updated, err := svc.Update(ownerContext(), bonus.UpdateBonusRequest{ID: created.ID, Amount: &amount, Note: &note})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, "Adjusted", updated.Note)

	stored, err := f.bonuses.GetByID(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(amount))
}

func TestBonusService_UpdateDriver(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	d := f.driver(t, "Alice", driver.DriverTypeCompany)

	created, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		DriverID:  &d.ID,
		Amount:    decimal.NewFromInt(40),
		WeekStart: "2025-03-10",
		Date:      "2025-03-10",
	})
	require.NoError(t, err)

	t.Run("unknown driver is rejected before writing", func(t *testing.T) {
		missing := "no-such-driver"
		_, err := svc.Update(ownerContext(), bonus.UpdateBonusRequest{ID: created.ID, DriverID: &missing})
		assert.ErrorIs(t, err, driver.ErrDriverNotFound)

		stored, err := f.bonuses.GetByID(context.Background(), created.ID, owner)
		require.NoError(t, err)
		require.NotNil(t, stored.DriverID)
		assert.Equal(t, d.ID, *stored.DriverID)
	})

	t.Run("driver of another owner is rejected", func(t *testing.T) {
		other, err := f.drivers.Create(context.Background(), driver.Driver{UserID: "owner-2", Name: "Bob", Type: driver.DriverTypeCompany, Status: driver.StatusActive})
		require.NoError(t, err)

		_, err = svc.Update(ownerContext(), bonus.UpdateBonusRequest{ID: created.ID, DriverID: &other.ID})
		assert.ErrorIs(t, err, driver.ErrDriverNotFound)
	})

	t.Run("empty driver makes the bonus company-wide", func(t *testing.T) {
		empty := ""
		updated, err := svc.Update(ownerContext(), bonus.UpdateBonusRequest{ID: created.ID, DriverID: &empty})
		require.NoError(t, err)
		assert.Nil(t, updated.DriverID)

		stored, err := f.bonuses.GetByID(context.Background(), created.ID, owner)
		require.NoError(t, err)
		assert.Nil(t, stored.DriverID)
	})
}

func TestBonusService_CreateWithEmptyDriverIsCompanyWide(t *testing.T) {
	svc := newTestService(newFixture())
	empty := ""

	resp, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		DriverID:  &empty,
		Amount:    decimal.NewFromInt(25),
		WeekStart: "2025-03-10",
		Date:      "2025-03-10",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.DriverID)
}

func TestBonusService_ListFiltersByDate(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)

	for _, date := range []string{"2025-03-09", "2025-03-10", "2025-03-16", "2025-03-17"} {
		_, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
			Amount:    decimal.NewFromInt(10),
			WeekStart: date,
			Date:      date,
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ownerContext(), payroll.PeriodSelection{Week: today})
	require.NoError(t, err)

	var dates []string
	for _, b := range list {
		dates = append(dates, b.Date)
	}
	assert.ElementsMatch(t, []string{"2025-03-10", "2025-03-16"}, dates)
}

func TestBonusService_OwnerIsolation(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)

	created, err := svc.Create(ownerContext(), bonus.CreateBonusRequest{
		Amount:    decimal.NewFromInt(10),
		WeekStart: "2025-03-10",
		Date:      "2025-03-10",
	})
	require.NoError(t, err)

	other := jwt.WithUserID(context.Background(), "owner-2")
	assert.ErrorIs(t, svc.Delete(other, created.ID), bonus.ErrBonusNotFound)
	assert.NoError(t, svc.Delete(ownerContext(), created.ID))
}

func TestBonusService_RequiresOwner(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.List(context.Background(), payroll.PeriodSelection{Week: today})
	assert.ErrorIs(t, err, jwt.ErrUserIDClaimMissing)
}
