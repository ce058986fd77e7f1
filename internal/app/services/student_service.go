package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// StudentService defines the interface for placement student operations
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter dto.StudentFilter) (*dto.StudentListResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	hasher      *auth.PasswordHasher
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	hasher *auth.PasswordHasher,
	validator *validation.Validator,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		hasher:      hasher,
		validator:   validator,
		logger:      logger,
	}
}

// Create validates the record, hashes the password and stores the student
func (s *studentServiceImpl) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		FullName:        strings.TrimSpace(req.FullName),
		UniversityID:    strings.TrimSpace(req.UniversityID),
		UniversityEmail: NormalizeEmail(req.UniversityEmail),
		PersonalEmail:   NormalizeEmail(req.PersonalEmail),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Course:          models.Course(strings.TrimSpace(req.Course)),
		Password:        req.Password,
		ProfileImage:    req.ProfileImage,
		Bio:             req.Bio,
		Resume:          req.Resume,
		Skills:          req.Skills,
		Projects:        req.Projects,
		SocialLinks:     req.SocialLinks,
	}

	// validate before hashing so that an empty password is reported
	if err := s.validator.Struct(student); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(student.Password)
	if err != nil {
		return nil, err
	}
	student.Password = hashed

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("course", string(student.Course)).Msg("Student created")
	return student, nil
}

// GetByID retrieves a student
func (s *studentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List returns one page of students
func (s *studentServiceImpl) List(ctx context.Context, filter dto.StudentFilter) (*dto.StudentListResponse, error) {
	students, total, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}
