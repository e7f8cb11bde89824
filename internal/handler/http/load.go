package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LoadHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Exists(w http.ResponseWriter, r *http.Request)
	ListFull(w http.ResponseWriter, r *http.Request)
}

type loadHandlerImpl struct {
	loadService load.LoadService
}

func NewLoadHandler(loadService load.LoadService) LoadHandler {
	return &loadHandlerImpl{loadService: loadService}
}

// List handles GET /loads?pickup_from=&pickup_to=
func (h *loadHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter load.LoadFilter
	var errs validator.ValidationErrors

	if v := r.URL.Query().Get("pickup_from"); v != "" {
		if from, ok := validator.IsValidDate(v); ok {
			filter.PickupFrom = &from
		} else {
			errs = append(errs, validator.ValidationError{Field: "pickup_from", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if v := r.URL.Query().Get("pickup_to"); v != "" {
		if to, ok := validator.IsValidDate(v); ok {
			filter.PickupTo = &to
		} else {
			errs = append(errs, validator.ValidationError{Field: "pickup_to", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	loads, err := h.loadService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, loads, &response.Meta{TotalItems: int64(len(loads))})
}

// Get handles GET /loads/{id}
func (h *loadHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.loadService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /loads. The period query selects the week whose
// automatic bonuses are reconciled afterwards.
func (h *loadHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req load.CreateLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.loadService.Create(r.Context(), req, sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Load created successfully", result)
}

// Update handles PUT /loads/{id}
func (h *loadHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req load.UpdateLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.loadService.Update(r.Context(), req, sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Load updated successfully", result)
}

// Delete handles DELETE /loads/{id}
func (h *loadHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.loadService.Delete(r.Context(), chi.URLParam(r, "id"), sel); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Load deleted successfully", nil)
}

// Exists handles GET /loads/exists?load_id=
func (h *loadHandlerImpl) Exists(w http.ResponseWriter, r *http.Request) {
	loadID := r.URL.Query().Get("load_id")
	if validator.IsEmpty(loadID) {
		response.BadRequest(w, "load_id is required", nil)
		return
	}

	exists, err := h.loadService.LoadIDExists(r.Context(), loadID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"exists": exists})
}

// ListFull handles GET /loads/full
func (h *loadHandlerImpl) ListFull(w http.ResponseWriter, r *http.Request) {
	loads, err := h.loadService.ListFullLoads(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loads)
}
