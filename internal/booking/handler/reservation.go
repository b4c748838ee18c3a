package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bookd/internal/booking/service"
	"bookd/internal/booking/validator"
	httputil "bookd/pkg/http"
	"bookd/pkg/logger"
	"bookd/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

type createBookingBody struct {
	UserID    string     `json:"user_id"`
	RoomID    string     `json:"room_id"`
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
	RequestID string     `json:"request_id"`
}

// Create runs the whole saga synchronously: a reservation created by this
// request is returned CONFIRMED or CANCELLED. A replayed request_id returns
// the stored row as it is, which can be PENDING while another request's
// saga for that id is still running.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), &validator.CreateReservationInput{
		UserID:    body.UserID,
		RoomID:    body.RoomID,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		RequestID: body.RequestID,
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, reservation); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetByID", "error", err)
	}
}

func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByUser", "error", writeErr)
		}
		return
	}

	reservations, total, err := h.service.ListByUser(r.Context(), r.URL.Query().Get("user_id"), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByUser", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListByUser", "error", err)
	}
}

func (h *ReservationHandler) RoomSuggestions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.RoomSuggestions(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RoomSuggestions", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "RoomSuggestions", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.ListByUser)
	router.GET("/bookings/:id", h.GetByID)
	router.GET("/rooms/suggestions", h.RoomSuggestions)
}
