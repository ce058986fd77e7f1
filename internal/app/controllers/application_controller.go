package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// ApplicationController handles placement applications
type ApplicationController struct {
	applicationService services.ApplicationService
	authz              *auth.AuthorizationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, authz *auth.AuthorizationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		authz:              authz,
		logger:             logger,
	}
}

// Apply records a student's application to a job listing
// @Summary Apply to a job listing
// @Description Coordinators only. The student's course must be one of the listing's required streams. A student applies to a listing at most once.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Application"
// @Success 201 {object} models.PlacementApplication
// @Failure 400 {object} dto.ErrorResponse "Invalid student or listing, or course mismatch"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}

	var req dto.ApplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.Apply(ctx.Request.Context(), req.StudentID, req.JobListingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", app.StudentID).
		Int64("jobListingID", app.JobListingID).
		Msg("Application created")
	ctx.JSON(http.StatusCreated, app)
}

// UpdateStatus handles moving an application to another stage
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} models.PlacementApplication
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, app)
}

// GetApplication handles fetching one application with its student and listing
// @Summary Get an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} models.PlacementApplication
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, app)
}

// ListApplications handles listing applications
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student ID"
// @Param jobListingId query int false "Job listing ID"
// @Param status query string false "Status"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.ApplicationListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.ApplicationFilter{
		Status: models.ApplicationStatus(ctx.Query("status")),
		Page:   page,
		Size:   size,
	}

	var ok bool
	if filter.StudentID, ok = optionalIDQuery(ctx, "studentId"); !ok {
		return
	}
	if filter.JobListingID, ok = optionalIDQuery(ctx, "jobListingId"); !ok {
		return
	}

	response, err := c.applicationService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func optionalIDQuery(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+name, ""))
		return 0, false
	}
	return id, true
}
