package service

import (
	"context"
	"errors"
	"testing"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func TestNormalizeModules(t *testing.T) {
	modules := normalizeModules([]model.Module{
		{Title: "  Intro ", Contents: []model.Content{{Type: "podcast", Title: "x"}}},
		{Title: ""},
		{Title: "Next", Quiz: model.Quiz{PassingScore: 150, Questions: []model.Question{
			{Question: "ok", Options: model.QuestionOptions{A: "1", B: "2"}, Answer: "B", Difficulty: 9},
			{Question: "no options", Answer: "a"},
		}}},
	})

	if len(modules) != 2 {
		t.Fatalf("expected untitled module dropped, got %d modules", len(modules))
	}
	if modules[0].Title != "Intro" || modules[0].Order != 1 || modules[1].Order != 2 {
		t.Fatalf("unexpected titles/order: %+v", modules)
	}
	if modules[0].Contents[0].Type != model.ContentOther {
		t.Fatalf("expected unknown content type to become other, got %q", modules[0].Contents[0].Type)
	}
	if modules[0].Quiz.PassingScore != model.DefaultPassingScore || modules[0].Quiz.Questions == nil {
		t.Fatalf("unexpected empty quiz: %+v", modules[0].Quiz)
	}
	q := modules[1].Quiz
	if q.PassingScore != model.DefaultPassingScore || len(q.Questions) != 1 {
		t.Fatalf("unexpected quiz: %+v", q)
	}
	if q.Questions[0].Answer != "b" || q.Questions[0].Difficulty != 5 {
		t.Fatalf("question not normalized: %+v", q.Questions[0])
	}
}

func TestCourseService_CreateAndGenerateModules(t *testing.T) {
	f := newFixture(t)
	f.fake.respond(endpointRoadmap, map[string]interface{}{
		"modules": []map[string]interface{}{
			{"title": "Setup", "description": "Install Go", "contents": []map[string]interface{}{{"type": "video", "title": "Install"}}},
			{"title": "Syntax", "description": "Basics"},
		},
	})
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	courses := NewCourseService(f.courses, f.users, nil, f.inference)
	ctx := context.Background()

	if _, err := courses.Create(ctx, CreateCourseInput{Name: "Go", Description: "Learn Go", InstructorID: student.ID}); !errors.Is(err, util.ErrNotAnInstructor) {
		t.Fatalf("expected students to be rejected as instructors, got %v", err)
	}

	course, err := courses.Create(ctx, CreateCourseInput{Name: "Go", Description: "Learn Go", InstructorID: teacher.ID, Tags: []string{" Go ", "go", "backend"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(course.ModuleList()) != 0 {
		t.Fatalf("expected no modules on a new course")
	}

	updated, err := courses.GenerateModules(ctx, course.ID)
	if err != nil {
		t.Fatalf("generate modules: %v", err)
	}
	modules := updated.ModuleList()
	if len(modules) != 2 || modules[0].Title != "Setup" || modules[1].Order != 2 {
		t.Fatalf("unexpected modules: %+v", modules)
	}

	reloaded, err := courses.Get(course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(reloaded.ModuleList()) != 2 {
		t.Fatalf("expected modules to be stored, got %d", len(reloaded.ModuleList()))
	}

	list, err := courses.ListByInstructor(teacher.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one course for instructor, got %d (err=%v)", len(list), err)
	}
}
