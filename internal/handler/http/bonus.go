package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BonusHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type bonusHandlerImpl struct {
	bonusService bonus.BonusService
}

func NewBonusHandler(bonusService bonus.BonusService) BonusHandler {
	return &bonusHandlerImpl{bonusService: bonusService}
}

// List handles GET /bonuses
func (h *bonusHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	bonuses, err := h.bonusService.List(r.Context(), sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, bonuses, &response.Meta{TotalItems: int64(len(bonuses))})
}

// Create handles POST /bonuses (manual bonuses only)
func (h *bonusHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req bonus.CreateBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.bonusService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus created successfully", result)
}

// Update handles PUT /bonuses/{id}
func (h *bonusHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req bonus.UpdateBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.bonusService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus updated successfully", result)
}

// Delete handles DELETE /bonuses/{id}
func (h *bonusHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bonusService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus deleted successfully", nil)
}
