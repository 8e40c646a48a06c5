package service

import (
	"context"
	"errors"
	"testing"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func TestEnrollmentService(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	course := f.course(t, teacher, "Go")
	ctx := context.Background()

	got, err := f.enrollment.Enroll(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if len(got.Students) != 1 || got.Students[0] != student.ID {
		t.Fatalf("expected student in course, got %v", got.Students)
	}

	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("expected already enrolled, got %v", err)
	}
	if _, err := f.enrollment.Enroll(ctx, teacher.ID, course.ID); !errors.Is(err, util.ErrNotAStudent) {
		t.Fatalf("expected not a student, got %v", err)
	}
	if _, err := f.enrollment.Enroll(ctx, student.ID, 999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected course not found, got %v", err)
	}
	if _, err := f.enrollment.Enroll(ctx, 999, course.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	got, err = f.enrollment.Unenroll(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if len(got.Students) != 0 {
		t.Fatalf("expected no students after unenroll, got %v", got.Students)
	}
	if _, err := f.enrollment.Unenroll(ctx, student.ID, course.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("expected not enrolled, got %v", err)
	}

	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	var count int64
	f.db.Model(&model.Progress{}).Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single progress record after re-enroll, got %d", count)
	}
}
