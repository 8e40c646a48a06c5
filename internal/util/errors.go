package util

import (
	"errors"
	"net/http"

	"eduverse_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds. Every AppError unwraps to one of these.
var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("inference service unavailable")
)

// AppError carries a client-safe message together with its kind.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func NewValidation(message string) error {
	return &AppError{Kind: ErrValidation, Message: message}
}

func NewNotFound(message string) error {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewConflict(message string) error {
	return &AppError{Kind: ErrConflict, Message: message}
}

var (
	ErrUserNotFound       = NewNotFound("User not found")
	ErrCourseNotFound     = NewNotFound("Course not found")
	ErrModuleNotFound     = NewNotFound("Module not found")
	ErrAssignmentNotFound = NewNotFound("Assignment not found")
	ErrSubmissionNotFound = NewNotFound("Submission not found")
	ErrNotEnrolled        = NewNotFound("Student is not enrolled in this course")
	ErrQuizNotGenerated   = NewNotFound("Quiz has not been generated for this module")

	ErrEmailInUse         = NewConflict("Email already in use")
	ErrUsernameInUse      = NewConflict("Username already in use")
	ErrAlreadyEnrolled    = NewConflict("Student already enrolled in this course")
	ErrInvalidCredentials = NewConflict("Invalid email or password")

	ErrInsufficientData = NewValidation("Not enough quiz data to build a roadmap")
	ErrNotAStudent      = NewValidation("Only students can enroll in courses")
	ErrNotAnInstructor  = NewValidation("Instructor must be a teacher account")
	ErrInvalidGrade     = NewValidation("Grade must be between 0 and the assignment's max marks")

	ErrPermissionDenied = &AppError{Kind: ErrForbidden, Message: "Permission denied"}
)

// HandleError writes the flat error body for err. Anything outside the
// taxonomy is logged and reported as a generic 500.
func HandleError(c *gin.Context, err error) {
	if errors.Is(err, ErrDependencyUnavailable) {
		logger.Log.Error("Inference service call failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Error(c, http.StatusInternalServerError, "External service unavailable, please try again later")
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		LogInternalError(c, err)
		return
	}

	switch {
	case errors.Is(appErr.Kind, ErrNotFound):
		Error(c, http.StatusNotFound, appErr.Message)
	case errors.Is(appErr.Kind, ErrForbidden):
		Error(c, http.StatusForbidden, appErr.Message)
	case errors.Is(appErr.Kind, ErrValidation), errors.Is(appErr.Kind, ErrConflict):
		Error(c, http.StatusBadRequest, appErr.Message)
	default:
		LogInternalError(c, err)
	}
}
