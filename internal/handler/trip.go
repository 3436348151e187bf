package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID          string  `json:"trip_id"`
	RenterID        string  `json:"renter_id"`
	OwnerID         string  `json:"owner_id"`
	VehicleID       string  `json:"vehicle_id"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	BookedAt        string  `json:"booked_at"`
	PlannedStart    string  `json:"planned_start"`
	PlannedEnd      string  `json:"planned_end"`
	ActualStart     string  `json:"actual_start,omitempty"`
	ActualEnd       string  `json:"actual_end,omitempty"`
	TotalAmount     float64 `json:"total_amount"`
	SecurityDeposit float64 `json:"security_deposit"`
	StartOdometer   int64   `json:"start_odometer,omitempty"`
	EndOdometer     int64   `json:"end_odometer,omitempty"`
	DistanceKm      int64   `json:"distance_km,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	RenterRating    int     `json:"renter_rating,omitempty"`
	OwnerRating     int     `json:"owner_rating,omitempty"`
	RenterComments  string  `json:"renter_comments,omitempty"`
	OwnerComments   string  `json:"owner_comments,omitempty"`
	HasClaim        bool    `json:"has_insurance_claim"`
	ClaimID         string  `json:"insurance_claim_id,omitempty"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:          trip.ID,
		RenterID:        trip.RenterID,
		OwnerID:         trip.OwnerID,
		VehicleID:       trip.VehicleID,
		Status:          string(trip.Status),
		PaymentStatus:   string(trip.PaymentStatus),
		BookedAt:        formatTime(trip.BookedAt),
		PlannedStart:    formatTime(trip.PlannedStart),
		PlannedEnd:      formatTime(trip.PlannedEnd),
		ActualStart:     formatTime(trip.ActualStart),
		ActualEnd:       formatTime(trip.ActualEnd),
		TotalAmount:     trip.TotalAmount,
		SecurityDeposit: trip.SecurityDeposit,
		StartOdometer:   trip.StartOdometer,
		EndOdometer:     trip.EndOdometer,
		DistanceKm:      trip.DistanceTraveled(),
		Notes:           trip.Notes,
		RenterRating:    trip.RenterRating,
		OwnerRating:     trip.OwnerRating,
		RenterComments:  trip.RenterComments,
		OwnerComments:   trip.OwnerComments,
		HasClaim:        trip.HasInsuranceClaim,
		ClaimID:         trip.InsuranceClaimID,
	}
}

func toTripListResponse(trips []*domain.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		out = append(out, toTripResponse(trip))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// CreateTripRequest is the HTTP request for booking a vehicle.
type CreateTripRequest struct {
	VehicleID    string  `json:"vehicle_id" binding:"required"`
	PlannedStart string  `json:"planned_start" binding:"required"`
	PlannedEnd   string  `json:"planned_end" binding:"required"`
	EstimatedKm  float64 `json:"estimated_km"`
	Notes        string  `json:"notes"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	var req CreateTripRequest
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

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		RenterID:     user.ID,
		VehicleID:    req.VehicleID,
		PlannedStart: plannedStart,
		PlannedEnd:   plannedEnd,
		EstimatedKm:  req.EstimatedKm,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// ConfirmTrip handles POST /v1/trips/:id/confirm
// Only the vehicle's owner or an admin may confirm a booking.
func (h *TripHandler) ConfirmTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.OwnerID != user.ID && !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	trip, err = h.tripService.ConfirmTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// StartTripRequest is the HTTP request for recording a pickup.
type StartTripRequest struct {
	StartOdometer int64 `json:"start_odometer" binding:"required"`
}

// StartTrip handles POST /v1/trips/:id/start
// Only the renter may start their own trip.
func (h *TripHandler) StartTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.RenterID != user.ID {
		respondError(c, service.ErrForbidden)
		return
	}

	trip, err = h.tripService.StartTrip(c.Request.Context(), service.StartTripRequest{
		TripID:        tripID,
		StartOdometer: req.StartOdometer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CompleteTripRequest is the HTTP request for recording a return.
type CompleteTripRequest struct {
	EndOdometer int64 `json:"end_odometer" binding:"required"`
}

// CompleteTrip handles POST /v1/trips/:id/complete
// Only the renter may complete their own trip.
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.RenterID != user.ID {
		respondError(c, service.ErrForbidden)
		return
	}

	trip, err = h.tripService.CompleteTrip(c.Request.Context(), service.CompleteTripRequest{
		TripID:      tripID,
		EndOdometer: req.EndOdometer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CancelTripRequest is the HTTP request for cancelling a trip.
type CancelTripRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelTrip handles POST /v1/trips/:id/cancel
// The renter, the owner, or an admin may cancel.
func (h *TripHandler) CancelTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	var req CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.RenterID != user.ID && trip.OwnerID != user.ID && !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	trip, err = h.tripService.CancelTrip(c.Request.Context(), service.CancelTripRequest{
		TripID:      tripID,
		CancelledBy: user.ID,
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// AddRatingRequest is the HTTP request for rating a completed trip.
type AddRatingRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Comments string `json:"comments"`
}

// AddRating handles POST /v1/trips/:id/rating
// The side being rated is inferred from the caller.
func (h *TripHandler) AddRating(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	var req AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	// The side being written is the caller's own.
	ratingReq := service.AddRatingRequest{TripID: tripID}
	switch user.ID {
	case trip.RenterID:
		ratingReq.RenterRating = req.Rating
		ratingReq.RenterComments = req.Comments
	case trip.OwnerID:
		ratingReq.OwnerRating = req.Rating
		ratingReq.OwnerComments = req.Comments
	default:
		respondError(c, service.ErrNotTripParticipant)
		return
	}

	trip, err = h.tripService.AddRatingsAndReviews(c.Request.Context(), ratingReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// LinkClaimRequest is the HTTP request for linking an insurance claim.
type LinkClaimRequest struct {
	ClaimID string `json:"claim_id" binding:"required"`
}

// LinkClaim handles POST /v1/trips/:id/claim
func (h *TripHandler) LinkClaim(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	tripID := c.Param("id")

	var req LinkClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.RenterID != user.ID && trip.OwnerID != user.ID && !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	trip, err = h.tripService.LinkInsuranceClaim(c.Request.Context(), tripID, req.ClaimID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.RenterID != user.ID && trip.OwnerID != user.ID && !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListMyTrips handles GET /v1/trips
func (h *TripHandler) ListMyTrips(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	trips, err := h.tripService.GetTripsForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripListResponse(trips))
}

// GetActiveTrip handles GET /v1/trips/active
func (h *TripHandler) GetActiveTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	trip, err := h.tripService.GetActiveTripForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if trip == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active trip"})
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListVehicleTrips handles GET /v1/vehicles/:id/trips
// Only the vehicle's owner or an admin may view a vehicle's trip history.
func (h *TripHandler) ListVehicleTrips(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	vehicleID := c.Param("id")

	trips, err := h.tripService.GetTripsByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !user.IsAdmin() {
		for _, trip := range trips {
			if trip.OwnerID != user.ID {
				respondError(c, service.ErrForbidden)
				return
			}
		}
	}

	respondJSON(c, http.StatusOK, toTripListResponse(trips))
}

// ListClaimTrips handles GET /v1/claims/trips
// Admin-only view of every trip with a linked insurance claim.
func (h *TripHandler) ListClaimTrips(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	if !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	trips, err := h.tripService.GetTripsWithClaims(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripListResponse(trips))
}
