package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bookd/internal/hotel/service"
	apperrors "bookd/pkg/errors"
	httputil "bookd/pkg/http"
	"bookd/pkg/logger"
	"bookd/pkg/model"
)

type LockHandler struct {
	service service.LockService
	log     *logger.Logger
}

func NewLockHandler(service service.LockService, log *logger.Logger) *LockHandler {
	return &LockHandler{
		service: service,
		log:     log,
	}
}

type holdBody struct {
	RequestID string     `json:"request_id"`
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
}

type lockBody struct {
	RequestID string `json:"request_id"`
}

func (h *LockHandler) Hold(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("room_id")

	var body holdBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Hold", "error", writeErr)
		}
		return
	}

	lock, err := h.service.Hold(r.Context(), roomID, body.RequestID, body.StartDate, body.EndDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Hold", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, lock); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Hold", "error", err)
	}
}

func (h *LockHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.transition(w, r, "Confirm", h.service.Confirm)
}

func (h *LockHandler) Release(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.transition(w, r, "Release", h.service.Release)
}

// transition handles the shared shape of confirm and release: both take a
// request_id and return the lock in its resulting status.
func (h *LockHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	op func(ctx context.Context, requestID string) (*model.RoomLock, error),
) {
	var body lockBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", name, "error", writeErr)
		}
		return
	}

	if body.RequestID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("request_id is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", name, "error", writeErr)
		}
		return
	}

	lock, err := op(r.Context(), body.RequestID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", name, "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, lock); err != nil {
		h.log.Error("failed to write JSON response", "handler", name, "error", err)
	}
}

func (h *LockHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/rooms/:room_id/hold", h.Hold)
	router.POST("/rooms/:room_id/confirm", h.Confirm)
	router.POST("/rooms/:room_id/release", h.Release)
}
