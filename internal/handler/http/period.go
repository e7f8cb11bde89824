package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
)

// parsePeriodSelection reads week_start, from, to and custom from the query.
// A missing week_start selects the week containing now.
func parsePeriodSelection(r *http.Request, now time.Time) (payroll.PeriodSelection, error) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	sel := payroll.PeriodSelection{Week: now}
	if v := q.Get("week_start"); v != "" {
		week, ok := validator.IsValidDate(v)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be a date in YYYY-MM-DD format"})
		}
		sel.Week = week
	}

	if v := q.Get("custom"); v != "" {
		custom, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "custom", Message: "must be true or false"})
		}
		sel.UseCustomRange = custom
	}

	fromStr, toStr := q.Get("from"), q.Get("to")
	if fromStr != "" || toStr != "" {
		from, okFrom := validator.IsValidDate(fromStr)
		if !okFrom {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a date in YYYY-MM-DD format"})
		}
		to, okTo := validator.IsValidDate(toStr)
		if !okTo {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a date in YYYY-MM-DD format"})
		}
		if okFrom && okTo {
			if to.Before(from) {
				errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
			}
			sel.CustomRange = &payroll.DateRange{From: from, To: to}
		}
	} else if sel.UseCustomRange {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "is required when custom is true"})
	}

	if len(errs) > 0 {
		return payroll.PeriodSelection{}, errs
	}
	return sel, nil
}
