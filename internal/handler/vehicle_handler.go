package handler

import (
	"net/http"
	"strconv"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VehicleHandler serves the vehicle catalog. Reads are public, writes
// are gated to admins at the route level.
type VehicleHandler struct {
	vehicleService service.VehicleService
	errorResponder
}

func NewVehicleHandler(vehicleService service.VehicleService, log *zap.SugaredLogger, debug bool) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, errorResponder: errorResponder{log: log, debug: debug}}
}

func vehicleIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Create adds a vehicle to the catalog.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// List returns every vehicle.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// Get returns one vehicle by id.
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := vehicleIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid vehicle ID"))
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// Update applies a partial update to a vehicle.
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := vehicleIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid vehicle ID"))
		return
	}

	var req model.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// Delete removes a vehicle from the catalog.
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := vehicleIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid vehicle ID"))
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Vehicle deleted successfully", nil)
}
