package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid period: range end is before range start")
)
