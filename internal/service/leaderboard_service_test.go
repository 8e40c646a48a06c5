package service

import (
	"context"
	"errors"
	"testing"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func uintPtr(v uint) *uint { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeLeaderboard(t *testing.T) {
	students := []model.User{
		{BaseModel: model.BaseModel{ID: 1}, Name: "A"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "B"},
		{BaseModel: model.BaseModel{ID: 3}, Name: "C"},
	}
	assignments := []model.Assignment{
		{
			BaseModel: model.BaseModel{ID: 10},
			Submissions: []model.Submission{
				{StudentID: uintPtr(1), Grade: floatPtr(6)},
				{StudentID: uintPtr(2), Grade: floatPtr(5)},
				{StudentID: uintPtr(99), Grade: floatPtr(10)},
				{StudentID: uintPtr(3)},
				{Grade: floatPtr(4)},
			},
		},
		{
			BaseModel: model.BaseModel{ID: 11},
			Submissions: []model.Submission{
				{StudentID: uintPtr(1), Grade: floatPtr(4)},
			},
		},
	}

	board := ComputeLeaderboard(7, students, assignments)
	want := []LeaderboardEntry{
		{StudentName: "A", StudentID: 1, TotalMarks: 10},
		{StudentName: "B", StudentID: 2, TotalMarks: 5},
		{StudentName: "C", StudentID: 3, TotalMarks: 0},
	}
	if len(board) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), board)
	}
	for i := range want {
		if board[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, board[i], want[i])
		}
	}

	// same submissions, reversed within and across assignments
	reversed := make([]model.Assignment, len(assignments))
	for i, a := range assignments {
		subs := make([]model.Submission, len(a.Submissions))
		for j, sub := range a.Submissions {
			subs[len(subs)-1-j] = sub
		}
		a.Submissions = subs
		reversed[len(reversed)-1-i] = a
	}
	again := ComputeLeaderboard(7, students, reversed)
	if len(again) != len(board) {
		t.Fatalf("expected %d entries after reordering, got %+v", len(board), again)
	}
	for i := range board {
		if again[i] != board[i] {
			t.Fatalf("entry %d changed with submission order: got %+v, want %+v", i, again[i], board[i])
		}
	}
}

func TestComputeLeaderboard_NoStudents(t *testing.T) {
	board := ComputeLeaderboard(1, nil, nil)
	if board == nil || len(board) != 0 {
		t.Fatalf("expected empty non-nil board, got %#v", board)
	}
}

func TestLeaderboardService(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "teacher", model.Teacher)
	alice := f.user(t, "alice", model.Student)
	bob := f.user(t, "bob", model.Student)
	course := f.course(t, teacher, "Go")

	ctx := context.Background()
	for _, st := range []*model.User{alice, bob} {
		if _, err := f.enrollment.Enroll(ctx, st.ID, course.ID); err != nil {
			t.Fatalf("enroll %s: %v", st.Username, err)
		}
	}

	assignment, err := f.assignment.Create(CreateAssignmentInput{CourseID: course.ID, Title: "HW1"})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if assignment.MaxMarks != 10 {
		t.Fatalf("expected default max marks 10, got %v", assignment.MaxMarks)
	}
	sub := &model.Submission{AssignmentID: assignment.ID, StudentID: &bob.ID}
	if err := f.assignments.SaveSubmission(sub); err != nil {
		t.Fatalf("save submission: %v", err)
	}
	if _, err := f.assignment.Grade(ctx, sub.ID, 11); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected grade above max marks to fail validation, got %v", err)
	}
	if _, err := f.assignment.Grade(ctx, sub.ID, 8); err != nil {
		t.Fatalf("grade: %v", err)
	}

	board, err := f.leaderboard.Leaderboard(ctx, course.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 2 || board[0].StudentID != alice.ID || board[0].TotalMarks != 0 ||
		board[1].StudentID != bob.ID || board[1].TotalMarks != 8 {
		t.Fatalf("unexpected board: %+v", board)
	}

	if _, err := f.leaderboard.Leaderboard(ctx, 999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected course not found, got %v", err)
	}
}
