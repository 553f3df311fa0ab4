package v1

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/estate_tracker/internal/chart"
	"github.com/shenikar/estate_tracker/internal/config"
	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/service"
	"github.com/sirupsen/logrus"
)

// FixSink принимает фиксы, присланные устройством
type FixSink interface {
	Push(fix models.Fix) models.Fix
}

// PermissionGrants управляет выдачей разрешений платформы
type PermissionGrants interface {
	Set(permission models.Permission, granted bool) error
	Snapshot() map[models.Permission]bool
}

type Handler struct {
	tracker   service.Tracker
	presenter service.StatsPresenter
	fixes     FixSink
	grants    PermissionGrants
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(tracker service.Tracker, presenter service.StatsPresenter, fixes FixSink, grants PermissionGrants, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		tracker:   tracker,
		presenter: presenter,
		fixes:     fixes,
		grants:    grants,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// @Summary Start location tracking
// @Description Request permissions, register the wake schedule and take the first sample. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Required permission denied"
// @Failure 422 {object} map[string]string "Initial fix could not be obtained"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking/start [post]
func (h *Handler) startTracking(c *gin.Context) {
	log := h.logger.WithField("method", "startTracking")

	if err := h.tracker.StartTracking(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, models.ErrPermissionDenied):
			log.WithError(err).Warn("Tracking not started: permission denied")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPositionUnavailable):
			log.WithError(err).Warn("Tracking not started: no initial fix")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Failed to start tracking")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ModelToStatusResponse(h.tracker.Status()))
}

// @Summary Stop location tracking
// @Description Unregister the wake schedule. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking/stop [post]
func (h *Handler) stopTracking(c *gin.Context) {
	log := h.logger.WithField("method", "stopTracking")

	if err := h.tracker.StopTracking(c.Request.Context()); err != nil {
		log.WithError(err).Error("Failed to stop tracking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToStatusResponse(h.tracker.Status()))
}

// @Summary Get tracking status
// @Description Current state, mode, interval, last fix and last stored sample. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /tracking/status [get]
func (h *Handler) trackingStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ModelToStatusResponse(h.tracker.Status()))
}

// @Summary Take a sample now
// @Description Run one sample-and-store cycle on demand. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} SampleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Location permission revoked"
// @Failure 409 {object} map[string]string "A cycle is already running"
// @Failure 422 {object} map[string]string "No fix available"
// @Failure 502 {object} map[string]string "Reverse geocoding failed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking/sample [post]
func (h *Handler) sampleNow(c *gin.Context) {
	log := h.logger.WithField("method", "sampleNow")

	sample, err := h.tracker.RunCycle(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCycleInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPermissionDenied):
			log.WithError(err).Warn("Sample skipped: permission denied")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrPositionUnavailable):
			log.WithError(err).Warn("Sample skipped: no fix")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrGeocodeFailure):
			log.WithError(err).Warn("Sample skipped: geocode failure")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Failed to store sample")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, ModelToSampleResponse(sample))
}

// @Summary Push a GPS fix
// @Description Device reports its latest fix. Pending cycles waiting for a fresh fix are woken. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param fix body PushFixRequest true "GPS fix"
// @Success 202 {object} FixResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /fixes [post]
func (h *Handler) pushFix(c *gin.Context) {
	var input PushFixRequest
	log := h.logger.WithField("method", "pushFix")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fix := h.fixes.Push(DTOToFix(input))
	c.JSON(http.StatusAccepted, ModelToFixResponse(fix))
}

// @Summary List stored samples
// @Description All stored samples, newest first. Requires API key.
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} SampleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations [get]
func (h *Handler) listLocations(c *gin.Context) {
	log := h.logger.WithField("method", "listLocations")

	samples, err := h.presenter.Samples(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list samples from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToSampleResponses(samples))
}

// @Summary Delete all samples
// @Description Irreversibly delete every stored sample. The body must carry confirm=true. Requires API key.
// @Tags Location
// @Accept json
// @Security ApiKeyAuth
// @Param request body ClearLocationsRequest true "Confirmation"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Missing or negative confirmation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations [delete]
func (h *Handler) clearLocations(c *gin.Context) {
	var input ClearLocationsRequest
	log := h.logger.WithField("method", "clearLocations")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.presenter.Clear(c.Request.Context(), *input.Confirm); err != nil {
		if errors.Is(err, models.ErrConfirmationRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to clear samples in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get days spent per place
// @Description Aggregate of distinct days per place. view=chart or view=table returns only that view. Requires API key.
// @Tags Stats
// @Produce json
// @Security ApiKeyAuth
// @Param view query string false "chart or table"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} map[string]string "Unknown view"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	view := c.Query("view")
	if view != "" && view != "chart" && view != "table" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be chart or table"})
		return
	}

	stats, err := h.presenter.Refresh(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch view {
	case "chart":
		c.JSON(http.StatusOK, h.presenter.ChartView(stats))
	case "table":
		c.JSON(http.StatusOK, h.presenter.TableView(stats))
	default:
		c.JSON(http.StatusOK, StatsResponse{
			Places: stats,
			Chart:  h.presenter.ChartView(stats),
			Table:  h.presenter.TableView(stats),
		})
	}
}

// @Summary Get the stats bar chart as PNG
// @Description Rendered bar chart of days spent per place. Requires API key.
// @Tags Stats
// @Produce png
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats/chart.png [get]
func (h *Handler) getStatsChart(c *gin.Context) {
	log := h.logger.WithField("method", "getStatsChart")

	stats, err := h.presenter.Refresh(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, h.presenter.ChartView(stats)); err != nil {
		log.WithError(err).Error("Failed to render chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// @Summary List platform permissions
// @Description Current grant of every platform permission. Requires API key.
// @Tags Permissions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} PermissionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /permissions [get]
func (h *Handler) listPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, PermissionsToResponse(h.grants.Snapshot()))
}

// @Summary Grant or revoke a platform permission
// @Description Revoking a location permission makes the next cycle stop tracking. Requires API key.
// @Tags Permissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "Permission name"
// @Param request body SetPermissionRequest true "Grant flag"
// @Success 200 {object} PermissionsResponse
// @Failure 400 {object} map[string]string "Invalid request body or unknown permission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /permissions/{name} [put]
func (h *Handler) setPermission(c *gin.Context) {
	var input SetPermissionRequest
	name := models.Permission(c.Param("name"))
	log := h.logger.WithField("method", "setPermission").WithField("permission", name)

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.grants.Set(name, *input.Granted); err != nil {
		log.WithError(err).Warn("Failed to set permission")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.WithField("granted", *input.Granted).Info("Permission updated")
	c.JSON(http.StatusOK, PermissionsToResponse(h.grants.Snapshot()))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
