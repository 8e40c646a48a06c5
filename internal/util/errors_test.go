package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", ErrCourseNotFound, http.StatusNotFound, "Course not found"},
		{"wrapped not found", fmt.Errorf("load: %w", ErrNotEnrolled), http.StatusNotFound, "Student is not enrolled in this course"},
		{"validation", NewValidation("Invalid course id"), http.StatusBadRequest, "Invalid course id"},
		{"conflict", ErrAlreadyEnrolled, http.StatusBadRequest, "Student already enrolled in this course"},
		{"forbidden", ErrPermissionDenied, http.StatusForbidden, "Permission denied"},
		{"dependency", fmt.Errorf("%w: /quiz: timeout", ErrDependencyUnavailable), http.StatusInternalServerError, "External service unavailable, please try again later"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tc.err)

			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["success"] != false || body["message"] != tc.message {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(ErrInsufficientData, ErrValidation) {
		t.Fatalf("insufficient data should be a validation error")
	}
	if !errors.Is(ErrInvalidCredentials, ErrConflict) {
		t.Fatalf("invalid credentials should be a conflict")
	}
	if errors.Is(ErrUserNotFound, ErrValidation) {
		t.Fatalf("not found must not match validation")
	}
}

func TestSuccessPayloadIsFlat(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessMessage(c, "Course found", gin.H{"course": gin.H{"id": 1}, "success": "ignored"})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true || body["message"] != "Course found" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["course"].(map[string]interface{}); !ok {
		t.Fatalf("expected payload at top level, got %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("unexpected data wrapper: %v", body)
	}
}
