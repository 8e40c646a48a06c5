package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"

	"gorm.io/gorm"
)

func TestSubmitAssignment(t *testing.T) {
	f := newFixture(t)
	cache := newMemoryCache()
	f.leaderboard.Cache = cache
	f.leaderboard.TTL = time.Minute

	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	outsider := f.user(t, "outsider", model.Student)
	course := f.course(t, teacher, "Go")
	ctx := context.Background()

	assignment, err := f.assignment.Create(CreateAssignmentInput{CourseID: course.ID, Title: "HW1"})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	if _, err := f.assignment.Submit(ctx, assignment.ID, outsider.ID, nil); !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("expected not enrolled, got %v", err)
	}
	if _, err := f.assignment.Submit(ctx, 999, student.ID, nil); !errors.Is(err, util.ErrAssignmentNotFound) {
		t.Fatalf("expected assignment not found, got %v", err)
	}

	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	first, err := f.assignment.Submit(ctx, assignment.ID, student.ID, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.assignment.Grade(ctx, first.ID, 7); err != nil {
		t.Fatalf("grade: %v", err)
	}

	board, err := f.leaderboard.Leaderboard(ctx, course.ID)
	if err != nil || len(board) != 1 || board[0].TotalMarks != 7 {
		t.Fatalf("unexpected board: %+v (err=%v)", board, err)
	}
	key := repository.LeaderboardKey(course.ID)
	if !cache.has(key) {
		t.Fatalf("expected board to be cached")
	}

	second, err := f.assignment.Submit(ctx, assignment.ID, student.ID, nil)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if second.ID != first.ID || second.Grade != nil || second.GradedAt != nil {
		t.Fatalf("expected resubmission to reuse the row and clear the grade, got %+v", second)
	}
	if cache.has(key) {
		t.Fatalf("expected resubmission to invalidate the cached board")
	}

	board, err = f.leaderboard.Leaderboard(ctx, course.ID)
	if err != nil || len(board) != 1 || board[0].TotalMarks != 0 {
		t.Fatalf("expected ungraded resubmission to score 0, got %+v (err=%v)", board, err)
	}

	progress, err := f.progress.FindByStudentAndCourse(student.ID, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.CompletedAssignments) != 1 || progress.CompletedAssignments[0] != assignment.ID {
		t.Fatalf("expected assignment recorded once, got %v", progress.CompletedAssignments)
	}

	assignments, err := f.assignment.ListByCourse(course.ID)
	if err != nil || len(assignments) != 1 || len(assignments[0].Submissions) != 1 {
		t.Fatalf("expected a single submission row, got %+v (err=%v)", assignments, err)
	}
}

func TestGradeInvalidatesLeaderboard(t *testing.T) {
	f := newFixture(t)
	cache := newMemoryCache()
	f.leaderboard.Cache = cache
	f.leaderboard.TTL = time.Minute

	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	course := f.course(t, teacher, "Go")
	ctx := context.Background()
	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	assignment, err := f.assignment.Create(CreateAssignmentInput{CourseID: course.ID, Title: "HW1", MaxMarks: 20})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	sub, err := f.assignment.Submit(ctx, assignment.ID, student.ID, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.leaderboard.Leaderboard(ctx, course.ID); err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if _, err := f.assignment.Grade(ctx, sub.ID, 15); err != nil {
		t.Fatalf("grade: %v", err)
	}
	board, err := f.leaderboard.Leaderboard(ctx, course.ID)
	if err != nil || len(board) != 1 || board[0].TotalMarks != 15 {
		t.Fatalf("expected fresh board after grading, got %+v (err=%v)", board, err)
	}

	if _, err := f.assignment.Grade(ctx, 999, 1); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}
}

func TestSubmitAssignment_LosesInsertRace(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	course := f.course(t, teacher, "Go")
	ctx := context.Background()
	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	assignment, err := f.assignment.Create(CreateAssignmentInput{CourseID: course.ID, Title: "HW1"})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	// another request inserts the student's row between our lookup and insert
	raced := false
	err = f.db.Callback().Create().Before("gorm:begin_transaction").Register("test:competing_submission", func(db *gorm.DB) {
		if raced || db.Statement.Table != "assignment_submissions" {
			return
		}
		raced = true
		now := time.Now()
		_, err := db.Statement.ConnPool.ExecContext(db.Statement.Context,
			"INSERT INTO assignment_submissions (created_at, updated_at, assignment_id, student_id, submitted_at) VALUES (?, ?, ?, ?, ?)",
			now, now, assignment.ID, student.ID, now)
		if err != nil {
			db.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	sub, err := f.assignment.Submit(ctx, assignment.ID, student.ID, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !raced {
		t.Fatalf("expected the competing insert to run")
	}

	assignments, err := f.assignment.ListByCourse(course.ID)
	if err != nil || len(assignments) != 1 || len(assignments[0].Submissions) != 1 {
		t.Fatalf("expected a single submission row, got %+v (err=%v)", assignments, err)
	}
	if assignments[0].Submissions[0].ID != sub.ID {
		t.Fatalf("expected submission folded into row %d, got %d", assignments[0].Submissions[0].ID, sub.ID)
	}

	if _, err := f.assignment.Grade(ctx, sub.ID, 6); err != nil {
		t.Fatalf("grade: %v", err)
	}
	board, err := f.leaderboard.Leaderboard(ctx, course.ID)
	if err != nil || len(board) != 1 || board[0].TotalMarks != 6 {
		t.Fatalf("expected grade counted once, got %+v (err=%v)", board, err)
	}
}
