package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transfer/internal/service"
)

// CatalogHandler handles HTTP requests for the vehicle and add-on catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// VehicleResponse is the HTTP representation of a bookable vehicle.
type VehicleResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	SeatCapacity    int     `json:"seat_capacity"`
	BaggageCapacity int     `json:"baggage_capacity"`
	PricePerKm      float64 `json:"price_per_km"`
}

// ServiceResponse is the HTTP representation of an add-on service.
type ServiceResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ListVehicles handles GET /v1/vehicles
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.catalogService.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, VehicleResponse{
			ID:              v.ID,
			Name:            v.Name,
			Type:            string(v.Type),
			SeatCapacity:    v.SeatCapacity,
			BaggageCapacity: v.BaggageCapacity,
			PricePerKm:      v.PricePerKm,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// ListServices handles GET /v1/services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Category: s.Category,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
