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

// StudentController handles placement student records
type StudentController struct {
	studentService services.StudentService
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, authz *auth.AuthorizationService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		authz:          authz,
		logger:         logger,
	}
}

// CreateStudent handles creating a placement student
// @Summary Create a student
// @Description Coordinators add a student to the placement roll. University ID and e-mail must be unique.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Duplicate university ID or e-mail"
// @Failure 500 {object} dto.ErrorResponse "Server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	if !requireCoordinator(ctx, c.authz) {
		return
	}

	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", student.ID).Msg("Student created")
	ctx.JSON(http.StatusCreated, student)
}

// GetStudent handles fetching one student
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// ListStudents handles listing students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param course query string false "Course filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.StudentListResponse
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.StudentFilter{
		Course: ctx.Query("course"),
		Page:   page,
		Size:   size,
	}

	response, err := c.studentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
