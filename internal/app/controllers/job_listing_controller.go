package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// requireCoordinator checks the caller's stored role; on failure the
// response is already written
func requireCoordinator(ctx *gin.Context, authz *auth.AuthorizationService) bool {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return false
	}
	if err := authz.ValidateCoordinator(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	return true
}

// JobListingController handles recruitment drive endpoints
type JobListingController struct {
	listingService services.JobListingService
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewJobListingController creates a new JobListingController
func NewJobListingController(listingService services.JobListingService, authz *auth.AuthorizationService, logger zerolog.Logger) *JobListingController {
	return &JobListingController{
		listingService: listingService,
		authz:          authz,
		logger:         logger,
	}
}

// CreateJobListing handles creating a job listing
// @Summary Create a job listing
// @Description Coordinators publish a recruitment drive. The campus drive date must not be after the joining date.
// @Tags job-listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobListingRequest true "Job listing"
// @Success 201 {object} models.JobListing
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /job-listings [post]
func (c *JobListingController) CreateJobListing(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}

	var req dto.JobListingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	listing, err := c.listingService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobListingID", listing.ID).Str("company", listing.CompanyName).Msg("Job listing created")
	ctx.JSON(http.StatusCreated, listing)
}

// UpdateJobListing handles partial updates of a job listing
// @Summary Update a job listing
// @Description Absent fields keep their value. The merged listing is validated again before saving.
// @Tags job-listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Param request body dto.UpdateJobListingRequest true "Fields to change"
// @Success 200 {object} models.JobListing
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /job-listings/{id} [patch]
func (c *JobListingController) UpdateJobListing(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobListingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	listing, err := c.listingService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// DeleteJobListing handles deleting a job listing
// @Summary Delete a job listing
// @Tags job-listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /job-listings/{id} [delete]
func (c *JobListingController) DeleteJobListing(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.listingService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobListingID", id).Msg("Job listing deleted")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Job listing deleted successfully"})
}

// GetJobListing handles fetching one job listing
// @Summary Get a job listing
// @Tags job-listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job listing ID"
// @Success 200 {object} models.JobListing
// @Failure 404 {object} dto.ErrorResponse "Job listing not found"
// @Router /job-listings/{id} [get]
func (c *JobListingController) GetJobListing(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	listing, err := c.listingService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// ListJobListings handles listing job listings
// @Summary List job listings
// @Tags job-listings
// @Produce json
// @Security BearerAuth
// @Param stream query string false "Required stream, e.g. CSE or B.Tech"
// @Param batchYear query string false "Batch year"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.JobListingListResponse
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /job-listings [get]
func (c *JobListingController) ListJobListings(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.JobListingFilter{
		Stream:    ctx.Query("stream"),
		BatchYear: ctx.Query("batchYear"),
		Page:      page,
		Size:      size,
	}

	response, err := c.listingService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
