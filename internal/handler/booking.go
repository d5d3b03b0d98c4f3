package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transfer/internal/domain"
	"transfer/internal/service"
)

// BookingHandler handles HTTP requests for the booking wizard.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RouteStepRequest is the HTTP body for the route step.
type RouteStepRequest struct {
	Direction      string  `json:"direction"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	PassengerCount int     `json:"passenger_count"`
	BaggageCount   int     `json:"baggage_count"`
	DistanceKm     float64 `json:"distance_km"`
}

// VehicleStepRequest is the HTTP body for the vehicle selection step.
type VehicleStepRequest struct {
	VehicleID  string   `json:"vehicle_id"`
	ServiceIDs []string `json:"service_ids,omitempty"`
}

// PersonalInfoStepRequest is the HTTP body for the personal info step.
type PersonalInfoStepRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FlightNumber    string `json:"flight_number,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// PaymentStepRequest is the HTTP body for the payment step.
type PaymentStepRequest struct {
	Method string `json:"method"`
}

// AdvanceRequest is the HTTP body for advancing the wizard. Exactly one step
// payload must be set, and it must match the draft's active step.
type AdvanceRequest struct {
	Route        *RouteStepRequest        `json:"route,omitempty"`
	Vehicle      *VehicleStepRequest      `json:"vehicle,omitempty"`
	PersonalInfo *PersonalInfoStepRequest `json:"personal_info,omitempty"`
	Payment      *PaymentStepRequest      `json:"payment,omitempty"`
}

// DraftResponse is the HTTP representation of a booking draft.
type DraftResponse struct {
	ID             string   `json:"id"`
	Step           string   `json:"step"`
	Direction      string   `json:"direction,omitempty"`
	Origin         string   `json:"origin,omitempty"`
	Destination    string   `json:"destination,omitempty"`
	Date           string   `json:"date,omitempty"`
	Time           string   `json:"time,omitempty"`
	PassengerCount int      `json:"passenger_count,omitempty"`
	BaggageCount   int      `json:"baggage_count,omitempty"`
	DistanceKm     float64  `json:"distance_km,omitempty"`
	VehicleID      string   `json:"vehicle_id,omitempty"`
	ServiceIDs     []string `json:"service_ids,omitempty"`
	BasePrice      float64  `json:"base_price"`
	ServicesPrice  float64  `json:"services_price"`
	TotalPrice     float64  `json:"total_price"`
	FinalPrice     float64  `json:"final_price"`
	PaymentMethod  string   `json:"payment_method,omitempty"`
}

// CreateDraft handles POST /v1/bookings
func (h *BookingHandler) CreateDraft(c *gin.Context) {
	draft, err := h.bookingService.CreateDraft(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, draftResponse(draft))
}

// GetDraft handles GET /v1/bookings/:id
func (h *BookingHandler) GetDraft(c *gin.Context) {
	draft, err := h.bookingService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, draftResponse(draft))
}

// Advance handles POST /v1/bookings/:id/advance
func (h *BookingHandler) Advance(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	input, ok := stepInput(req)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "exactly one step payload must be provided"})
		return
	}

	draft, err := h.bookingService.Advance(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, draftResponse(draft))
}

// Back handles POST /v1/bookings/:id/back
func (h *BookingHandler) Back(c *gin.Context) {
	draft, err := h.bookingService.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, draftResponse(draft))
}

// PaymentMethodResponse is one offered payment method with its effective price.
type PaymentMethodResponse struct {
	Method           string  `json:"method"`
	DisplayName      string  `json:"display_name"`
	DiscountPercent  float64 `json:"discount_percent"`
	RequiresRedirect bool    `json:"requires_redirect"`
	FinalPrice       float64 `json:"final_price"`
}

// PaymentMethods handles GET /v1/bookings/:id/payment-methods
func (h *BookingHandler) PaymentMethods(c *gin.Context) {
	quotes, err := h.bookingService.PaymentMethods(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentMethodResponse, 0, len(quotes))
	for _, q := range quotes {
		response = append(response, PaymentMethodResponse{
			Method:           string(q.Option.Method),
			DisplayName:      q.Option.DisplayName,
			DiscountPercent:  q.Option.DiscountPercent,
			RequiresRedirect: q.Option.RequiresRedirect,
			FinalPrice:       q.FinalPrice,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// CheckoutResponse describes how the confirmed reservation is to be paid.
type CheckoutResponse struct {
	Method           string  `json:"method"`
	Amount           float64 `json:"amount"`
	OrderReference   string  `json:"order_reference"`
	RequiresRedirect bool    `json:"requires_redirect"`
	RedirectURL      string  `json:"redirect_url,omitempty"`
	BankName         string  `json:"bank_name,omitempty"`
	BankAccount      string  `json:"bank_account,omitempty"`
	BankHolder       string  `json:"bank_holder,omitempty"`
}

// ConfirmResponse is the HTTP response for a confirmed booking.
type ConfirmResponse struct {
	Reservation       ReservationResponse `json:"reservation"`
	VerificationToken string              `json:"verification_token"`
	Checkout          CheckoutResponse    `json:"checkout"`
}

// Confirm handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	result, err := h.bookingService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ConfirmResponse{
		Reservation:       reservationResponse(result.Reservation),
		VerificationToken: result.Reservation.VerificationToken,
		Checkout: CheckoutResponse{
			Method:           string(result.Checkout.Method),
			Amount:           result.Checkout.Amount,
			OrderReference:   result.Checkout.OrderReference,
			RequiresRedirect: result.Checkout.RequiresRedirect,
			RedirectURL:      result.Checkout.RedirectURL,
			BankName:         result.Checkout.BankName,
			BankAccount:      result.Checkout.BankAccount,
			BankHolder:       result.Checkout.BankHolder,
		},
	})
}

// stepInput converts the union request to the single service-level step input.
func stepInput(req AdvanceRequest) (service.StepInput, bool) {
	set := 0
	var input service.StepInput

	if req.Route != nil {
		set++
		input = service.RouteInput{
			Direction:      req.Route.Direction,
			Origin:         req.Route.Origin,
			Destination:    req.Route.Destination,
			Date:           req.Route.Date,
			Time:           req.Route.Time,
			PassengerCount: req.Route.PassengerCount,
			BaggageCount:   req.Route.BaggageCount,
			DistanceKm:     req.Route.DistanceKm,
		}
	}

	if req.Vehicle != nil {
		set++
		input = service.VehicleAndServicesInput{
			VehicleID:  req.Vehicle.VehicleID,
			ServiceIDs: req.Vehicle.ServiceIDs,
		}
	}

	if req.PersonalInfo != nil {
		set++
		input = service.PersonalInfoInput{
			FirstName:       req.PersonalInfo.FirstName,
			LastName:        req.PersonalInfo.LastName,
			Email:           req.PersonalInfo.Email,
			Phone:           req.PersonalInfo.Phone,
			FlightNumber:    req.PersonalInfo.FlightNumber,
			SpecialRequests: req.PersonalInfo.SpecialRequests,
		}
	}

	if req.Payment != nil {
		set++
		input = service.PaymentInput{Method: req.Payment.Method}
	}

	return input, set == 1
}

// draftResponse maps a draft to its HTTP representation.
func draftResponse(draft *domain.ReservationDraft) DraftResponse {
	return DraftResponse{
		ID:             draft.ID,
		Step:           draft.Step.String(),
		Direction:      string(draft.Direction),
		Origin:         draft.Origin,
		Destination:    draft.Destination,
		Date:           draft.Date,
		Time:           draft.Time,
		PassengerCount: draft.PassengerCount,
		BaggageCount:   draft.BaggageCount,
		DistanceKm:     draft.DistanceKm,
		VehicleID:      draft.VehicleID,
		ServiceIDs:     draft.ServiceIDs,
		BasePrice:      draft.BasePrice,
		ServicesPrice:  draft.ServicesPrice,
		TotalPrice:     draft.TotalPrice,
		FinalPrice:     draft.FinalPrice,
		PaymentMethod:  string(draft.PaymentMethod),
	}
}
