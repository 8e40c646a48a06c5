package service

import (
	"context"
	"errors"
	"testing"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func TestPerformanceRatio(t *testing.T) {
	if _, err := PerformanceRatio(nil); !errors.Is(err, util.ErrInsufficientData) {
		t.Fatalf("expected insufficient data for no evaluations, got %v", err)
	}
	if _, err := PerformanceRatio([]model.Evaluation{{Marks: 0, QuestionCount: 0}}); !errors.Is(err, util.ErrInsufficientData) {
		t.Fatalf("expected insufficient data for zero questions, got %v", err)
	}

	ratio, err := PerformanceRatio([]model.Evaluation{
		{Marks: 8, QuestionCount: 5},
		{Marks: 4, QuestionCount: 5},
	})
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if ratio != 0.6 {
		t.Fatalf("expected 0.6, got %v", ratio)
	}

	ratio, _ = PerformanceRatio([]model.Evaluation{{Marks: 50, QuestionCount: 5}})
	if ratio != 1 {
		t.Fatalf("expected ratio clamped to 1, got %v", ratio)
	}
}

func TestRoadmapPriority(t *testing.T) {
	if p := roadmapPriority(0); p != 5 {
		t.Fatalf("expected 5 for no marks, got %d", p)
	}
	if p := roadmapPriority(1); p != 1 {
		t.Fatalf("expected 1 for full marks, got %d", p)
	}
}

func TestBuildRoadmap(t *testing.T) {
	f := newFixture(t)
	f.fake.respond(endpointModuleSuggestions, map[string]interface{}{
		"suggestions": map[string][]string{"Basics": {"Revisit variables"}},
	})
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	basics := sampleModule()
	basics.Contents = []model.Content{{Type: model.ContentVideo, Title: "Intro"}}
	course := f.course(t, teacher, "Go", basics)
	ctx := context.Background()

	if _, err := f.roadmap.BuildRoadmap(ctx, student.ID, course.ID); !errors.Is(err, util.ErrInsufficientData) {
		t.Fatalf("expected insufficient data before any quiz, got %v", err)
	}
	if f.fake.hitCount(endpointModuleSuggestions) != 0 {
		t.Fatalf("no suggestion call expected without data")
	}

	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := f.evaluations.Create(&model.Evaluation{CourseID: course.ID, StudentID: student.ID, Marks: 3, QuestionCount: 2}); err != nil {
		t.Fatalf("create evaluation: %v", err)
	}

	roadmap, err := f.roadmap.BuildRoadmap(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("roadmap: %v", err)
	}
	if roadmap.Performance != 0.75 || len(roadmap.Suggestions["Basics"]) != 1 {
		t.Fatalf("unexpected roadmap: %+v", roadmap)
	}

	progress, err := f.progress.FindByStudentAndCourse(student.ID, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.PersonalizedRoadmap) != 1 {
		t.Fatalf("expected stored roadmap entry, got %+v", progress.PersonalizedRoadmap)
	}
	entry := progress.PersonalizedRoadmap[0]
	if entry.ModuleTitle != "Basics" || len(entry.RecommendedContent) != 1 || entry.Priority != 2 {
		t.Fatalf("unexpected roadmap entry: %+v", entry)
	}

	if _, err := f.roadmap.BuildRoadmap(ctx, 999, course.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
