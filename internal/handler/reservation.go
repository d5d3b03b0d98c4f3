package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transfer/internal/domain"
	"transfer/internal/service"
)

// ReservationHandler handles HTTP requests for the reservation lifecycle.
type ReservationHandler struct {
	tripService  *service.TripService
	tokenService *service.TokenService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(tripService *service.TripService, tokenService *service.TokenService) *ReservationHandler {
	return &ReservationHandler{tripService: tripService, tokenService: tokenService}
}

// ReservationResponse is the HTTP representation of a reservation.
type ReservationResponse struct {
	ID             string          `json:"id"`
	Direction      string          `json:"direction"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	PassengerCount int             `json:"passenger_count"`
	BaggageCount   int             `json:"baggage_count"`
	DistanceKm     float64         `json:"distance_km"`
	VehicleID      string          `json:"vehicle_id"`
	ServiceIDs     []string        `json:"service_ids,omitempty"`
	BasePrice      float64         `json:"base_price"`
	ServicesPrice  float64         `json:"services_price"`
	TotalPrice     float64         `json:"total_price"`
	FinalPrice     float64         `json:"final_price"`
	Customer       domain.Customer `json:"customer"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	DriverID       string          `json:"driver_id,omitempty"`
	DriverShare    float64         `json:"driver_share,omitempty"`
	CompanyShare   float64         `json:"company_share,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason   string          `json:"cancel_reason,omitempty"`
}

// List handles GET /v1/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	reservations, err := h.tripService.GetAllReservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		response = append(response, reservationResponse(r))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	reservation, err := h.tripService.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, reservationResponse(reservation))
}

// AssignRequest is the HTTP body for assigning a driver.
type AssignRequest struct {
	DriverID string `json:"driver_id"`
}

// Assign handles POST /v1/reservations/:id/assign
func (h *ReservationHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reservation, err := h.tripService.Assign(c.Request.Context(), service.AssignRequest{
		ReservationID: c.Param("id"),
		DriverID:      req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, reservationResponse(reservation))
}

// Start handles POST /v1/reservations/:id/start
func (h *ReservationHandler) Start(c *gin.Context) {
	reservation, err := h.tripService.Start(c.Request.Context(), service.StartRequest{
		ReservationID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, reservationResponse(reservation))
}

// Complete handles POST /v1/reservations/:id/complete
func (h *ReservationHandler) Complete(c *gin.Context) {
	reservation, err := h.tripService.Complete(c.Request.Context(), service.CompleteRequest{
		ReservationID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, reservationResponse(reservation))
}

// CancelRequest is the HTTP body for cancelling a reservation.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reservation, err := h.tripService.Cancel(c.Request.Context(), service.CancelRequest{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, reservationResponse(reservation))
}

// VerifyRequest is the HTTP body for verifying a scanned QR token.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse reports the reservation behind a token and whether the trip
// may be started from it.
type VerifyResponse struct {
	Reservation    ReservationResponse `json:"reservation"`
	UsableForStart bool                `json:"usable_for_start"`
}

// Verify handles POST /v1/reservations/verify
func (h *ReservationHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.VerifyToken(c.Request.Context(), h.tokenService, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyResponse{
		Reservation:    reservationResponse(result.Reservation),
		UsableForStart: result.UsableForStart,
	})
}

// reservationResponse maps a reservation to its HTTP representation.
func reservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID,
		Direction:      string(r.Direction),
		Origin:         r.Origin,
		Destination:    r.Destination,
		Date:           r.Date,
		Time:           r.Time,
		PassengerCount: r.PassengerCount,
		BaggageCount:   r.BaggageCount,
		DistanceKm:     r.DistanceKm,
		VehicleID:      r.VehicleID,
		ServiceIDs:     r.ServiceIDs,
		BasePrice:      r.BasePrice,
		ServicesPrice:  r.ServicesPrice,
		TotalPrice:     r.TotalPrice,
		FinalPrice:     r.FinalPrice,
		Customer:       r.Customer,
		PaymentMethod:  string(r.PaymentMethod),
		Status:         string(r.Status),
		DriverID:       r.DriverID,
		DriverShare:    r.DriverShare,
		CompanyShare:   r.CompanyShare,
		CreatedAt:      r.CreatedAt,
		StartedAt:      timePtr(r.StartedAt),
		CompletedAt:    timePtr(r.CompletedAt),
		CancelledAt:    timePtr(r.CancelledAt),
		CancelReason:   r.CancelReason,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
