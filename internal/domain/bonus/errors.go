package bonus

import "errors"

var (
	ErrBonusNotFound          = errors.New("bonus not found")
	ErrAutomaticBonusReadOnly = errors.New("automatic bonuses are managed by the system and cannot be edited")
)
