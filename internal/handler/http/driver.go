package http

import (
	"encoding/json"
	"net/http"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DriverHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type driverHandlerImpl struct {
	driverService driver.DriverService
}

func NewDriverHandler(driverService driver.DriverService) DriverHandler {
	return &driverHandlerImpl{driverService: driverService}
}

// List handles GET /drivers
func (h *driverHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.driverService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, drivers, &response.Meta{TotalItems: int64(len(drivers))})
}

// Get handles GET /drivers/{id}
func (h *driverHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.driverService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /drivers
func (h *driverHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req driver.CreateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.driverService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Driver created successfully", result)
}

// Update handles PUT /drivers/{id}
func (h *driverHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req driver.UpdateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.driverService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Driver updated successfully", result)
}

// Delete handles DELETE /drivers/{id}
func (h *driverHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.driverService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Driver deleted successfully", nil)
}
