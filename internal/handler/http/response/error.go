package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, jwt.ErrUserIDClaimMissing):
		Unauthorized(w, "Missing owner in token")

	// Driver domain errors
	case errors.Is(err, driver.ErrDriverNotFound):
		NotFound(w, "Driver not found")

	// Load domain errors
	case errors.Is(err, load.ErrLoadNotFound):
		NotFound(w, "Load not found")
	case errors.Is(err, load.ErrLoadIDExists):
		Conflict(w, "Load ID already exists")
	case errors.Is(err, load.ErrLoadHasPartials):
		Conflict(w, "Load still has partial loads attached")
	case errors.Is(err, load.ErrParentNotFound):
		BadRequest(w, "Parent load not found", nil)
	case errors.Is(err, load.ErrParentRequired),
		errors.Is(err, load.ErrParentNotAllowed),
		errors.Is(err, load.ErrParentNotFull),
		errors.Is(err, load.ErrDeliveryBeforePickup):
		BadRequest(w, err.Error(), nil)

	// Bonus domain errors
	case errors.Is(err, bonus.ErrBonusNotFound):
		NotFound(w, "Bonus not found")
	case errors.Is(err, bonus.ErrAutomaticBonusReadOnly):
		Forbidden(w, "Automatic bonuses cannot be edited")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
