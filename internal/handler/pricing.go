package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/service"
)

// PricingHandler handles HTTP requests for price quotes.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// QuoteRequest is the HTTP request for a price quote. The window uses the
// same RFC3339 fields as a booking so a renter can quote exactly what they
// are about to book.
type QuoteRequest struct {
	VehicleClass string  `json:"vehicle_class"`
	PlannedStart string  `json:"planned_start" binding:"required"`
	PlannedEnd   string  `json:"planned_end" binding:"required"`
	EstimatedKm  float64 `json:"estimated_km"`
}

// QuoteResponse is the HTTP response for a price quote.
type QuoteResponse struct {
	VehicleClass    string  `json:"vehicle_class"`
	BaseRatePerHour float64 `json:"base_rate_per_hour"`
	PerKmRate       float64 `json:"per_km_rate"`
	Hours           float64 `json:"hours"`
	EstimatedKm     float64 `json:"estimated_km"`
	BaseAmount      float64 `json:"base_amount"`
	DistanceAmount  float64 `json:"distance_amount"`
	Subtotal        float64 `json:"subtotal"`
	SecurityDeposit float64 `json:"security_deposit"`
	ServiceFee      float64 `json:"service_fee"`
	TotalAmount     float64 `json:"total_amount"`
	Currency        string  `json:"currency"`
}

func toQuoteResponse(quote *domain.Quote) QuoteResponse {
	return QuoteResponse{
		VehicleClass:    string(quote.VehicleClass),
		BaseRatePerHour: quote.BaseRatePerHour,
		PerKmRate:       quote.PerKmRate,
		Hours:           quote.PlannedHours,
		EstimatedKm:     quote.EstimatedKm,
		BaseAmount:      quote.BaseAmount,
		DistanceAmount:  quote.DistanceAmount,
		Subtotal:        quote.Subtotal,
		SecurityDeposit: quote.SecurityDeposit,
		ServiceFee:      quote.ServiceFee,
		TotalAmount:     quote.TotalAmount,
		Currency:        quote.Currency,
	}
}

// Quote handles POST /v1/pricing/quote
// Unknown vehicle classes are priced at STANDARD rates.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plannedStart, err := time.Parse(time.RFC3339, req.PlannedStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "planned_start must be RFC3339"})
		return
	}

	plannedEnd, err := time.Parse(time.RFC3339, req.PlannedEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "planned_end must be RFC3339"})
		return
	}

	class := domain.VehicleClass(strings.ToUpper(req.VehicleClass))
	hours := plannedEnd.Sub(plannedStart).Hours()

	quote, err := h.pricingService.Calculate(class, hours, req.EstimatedKm)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(quote))
}

// ClassRateResponse describes one vehicle class's rates.
type ClassRateResponse struct {
	Class           string  `json:"class"`
	BaseRatePerHour float64 `json:"base_rate_per_hour"`
	PerKmRate       float64 `json:"per_km_rate"`
	Description     string  `json:"description"`
}

// ListClasses handles GET /v1/pricing/classes
func (h *PricingHandler) ListClasses(c *gin.Context) {
	rates := h.pricingService.Rates()

	out := make([]ClassRateResponse, 0, len(rates))
	for _, class := range []domain.VehicleClass{
		domain.VehicleClassEconomy,
		domain.VehicleClassStandard,
		domain.VehicleClassPremium,
	} {
		rate, ok := rates[class]
		if !ok {
			continue
		}
		out = append(out, ClassRateResponse{
			Class:           string(class),
			BaseRatePerHour: rate.BaseRatePerHour,
			PerKmRate:       rate.PerKmRate,
			Description:     rate.Description,
		})
	}

	respondJSON(c, http.StatusOK, out)
}
