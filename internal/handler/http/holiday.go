package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/handler/http/middleware"
	"github.com/mfl-hr/attendance-dashboard-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidaySvc holiday.Service
}

func NewHolidayHandler(holidaySvc holiday.Service) HolidayHandler {
	return &holidayHandlerImpl{holidaySvc: holidaySvc}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.holidaySvc.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, holidays)
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request format")
		return
	}

	created, err := h.holidaySvc.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

// Process implements HolidayHandler.
func (h *holidayHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	result, err := h.holidaySvc.Process(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, result)
}

// Finalize implements HolidayHandler.
func (h *holidayHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	if err := h.holidaySvc.Finalize(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, map[string]string{"message": "holiday finalized"})
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := holidayID(w, r)
	if !ok {
		return
	}

	if err := h.holidaySvc.Delete(r.Context(), id, middleware.IsAdmin(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, map[string]string{"message": "holiday deleted"})
}

func holidayID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid holiday id")
		return 0, false
	}
	return id, true
}
