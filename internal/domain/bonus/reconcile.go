package bonus

import (
	"context"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/shopspring/decimal"
)

// ReconcileRequest carries the state a pass reconciles against. Loads must be
// the collection as it is after the triggering mutation.
type ReconcileRequest struct {
	UserID      string
	PeriodStart time.Time
	Loads       []load.Load
	Drivers     []driver.Driver
}

type ReconcileAction string

const (
	ActionCreated ReconcileAction = "created"
	ActionUpdated ReconcileAction = "updated"
	ActionDeleted ReconcileAction = "deleted"
)

type ReconcileFailure struct {
	DriverID string          `json:"driver_id"`
	BonusID  string          `json:"bonus_id,omitempty"`
	Action   ReconcileAction `json:"action"`
	Error    string          `json:"error"`
}

type ReconcileResult struct {
	WeekStart string             `json:"week_start"`
	Created   int                `json:"created"`
	Updated   int                `json:"updated"`
	Deleted   int                `json:"deleted"`
	Unchanged int                `json:"unchanged"`
	Failures  []ReconcileFailure `json:"failures,omitempty"`
}

// Changed reports whether the pass wrote anything.
func (r ReconcileResult) Changed() bool {
	return r.Created+r.Updated+r.Deleted > 0
}

// Reconciler keeps the automatic bonuses of one calendar week in line with
// current eligibility.
type Reconciler interface {
	Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error)
}

type BonusEvent struct {
	Action    ReconcileAction `json:"action"`
	UserID    string          `json:"user_id"`
	BonusID   string          `json:"bonus_id"`
	DriverID  string          `json:"driver_id"`
	WeekStart string          `json:"week_start"`
	Amount    decimal.Decimal `json:"amount"`
	At        time.Time       `json:"at"`
}

// RoutingKey is the message routing key of the event.
func (e BonusEvent) RoutingKey() string {
	return "bonus.automatic." + string(e.Action)
}
