package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// VehicleHandler handles HTTP requests for the vehicle registry.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleResponse is the HTTP response for vehicle operations.
type VehicleResponse struct {
	VehicleID    string `json:"vehicle_id"`
	LicensePlate string `json:"license_plate"`
	OwnerID      string `json:"owner_id"`
	Status       string `json:"status"`
	Class        string `json:"class"`
	Verified     bool   `json:"verified"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Seats        int    `json:"seats,omitempty"`
}

func toVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:    vehicle.ID,
		LicensePlate: vehicle.LicensePlate,
		OwnerID:      vehicle.OwnerID,
		Status:       string(vehicle.Status),
		Class:        string(vehicle.Class),
		Verified:     vehicle.Verified,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		Seats:        vehicle.Seats,
	}
}

func toVehicleListResponse(vehicles []*domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, toVehicleResponse(vehicle))
	}
	return out
}

// RegisterVehicleRequest is the HTTP request for listing a vehicle.
type RegisterVehicleRequest struct {
	LicensePlate string `json:"license_plate" binding:"required"`
	Class        string `json:"class"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Seats        int    `json:"seats"`
}

// RegisterVehicle handles POST /v1/vehicles
// Only hosts and admins may list vehicles.
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	if !user.IsHost() && !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.RegisterVehicle(c.Request.Context(), service.RegisterVehicleRequest{
		OwnerID:      user.ID,
		LicensePlate: req.LicensePlate,
		Class:        req.Class,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Seats:        req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// ListAvailable handles GET /v1/vehicles
func (h *VehicleHandler) ListAvailable(c *gin.Context) {
	vehicles, err := h.vehicleService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleListResponse(vehicles))
}

// ListMine handles GET /v1/vehicles/mine
func (h *VehicleHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	vehicles, err := h.vehicleService.GetForOwner(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleListResponse(vehicles))
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// SetStatusRequest is the HTTP request for changing a vehicle's status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus handles PUT /v1/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.SetStatus(c.Request.Context(), user.ID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// VerifyVehicle handles POST /v1/vehicles/:id/verify
// Admin-only.
func (h *VehicleHandler) VerifyVehicle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrInvalidToken)
		return
	}

	if !user.IsAdmin() {
		respondError(c, service.ErrForbidden)
		return
	}

	vehicle, err := h.vehicleService.VerifyVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}
