package service

import (
	"context"
	"errors"
	"testing"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func TestGradeAnswers_UsesStoredQuiz(t *testing.T) {
	quiz := sampleModule().Quiz
	records, correct := gradeAnswers(quiz, []AnsweredQuestion{
		{Question: "Q1", Answer: "b", SelectedOption: "A"},
		{Question: "Q2", Answer: "a", SelectedOption: "a"},
		{Question: "Q3", Answer: "c", SelectedOption: " C "},
	})
	if correct != 1 {
		t.Fatalf("expected 1 correct, got %d", correct)
	}
	// Q3 has no stored question, so the submitted key is not trusted
	if !records[0].Correct || records[1].Correct || records[2].Correct {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(records[0].ConceptTags) != 1 || records[0].ConceptTags[0] != "vars" {
		t.Fatalf("expected stored concept tags, got %v", records[0].ConceptTags)
	}
	if records[2].ConceptTags == nil {
		t.Fatalf("expected non-nil concept tags")
	}
}

func TestSubmitEvaluation(t *testing.T) {
	f := newFixture(t)
	f.fake.respond(endpointQuizFeedback, map[string]interface{}{
		"feedback": []map[string]string{{"feedback": "Correct"}, {"feedback": "Review types"}},
	})
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	course := f.course(t, teacher, "Go", sampleModule(), model.Module{Title: "Advanced", Order: 2})

	ctx := context.Background()
	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	result, err := f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{
		CourseID:    course.ID,
		StudentID:   student.ID,
		ModuleIndex: 0,
		Questions: []AnsweredQuestion{
			{Question: "Q1", Answer: "a", SelectedOption: "a"},
			{Question: "Q2", Answer: "b", SelectedOption: "b"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100 || !result.Passed {
		t.Fatalf("unexpected result: score=%v passed=%v", result.Score, result.Passed)
	}
	ev := result.Evaluation
	if ev.ID == 0 || ev.Marks != 4 || ev.QuestionCount != 2 || len(ev.Feedback) != 2 {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}

	progress, err := f.progress.FindByStudentAndCourse(student.ID, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.CompletedQuizzes) != 1 || progress.CompletedQuizzes[0].EvaluationID != ev.ID {
		t.Fatalf("expected completed quiz for evaluation %d, got %+v", ev.ID, progress.CompletedQuizzes)
	}
	if progress.OverallProgress != 50 || progress.Streak != 1 {
		t.Fatalf("unexpected ledger: overall=%v streak=%d", progress.OverallProgress, progress.Streak)
	}

	// a second attempt is a new evaluation
	half := 2.0
	second, err := f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{
		CourseID:    course.ID,
		StudentID:   student.ID,
		ModuleIndex: 0,
		Marks:       &half,
		Questions: []AnsweredQuestion{
			{Question: "Q1", Answer: "a", SelectedOption: "a"},
			{Question: "Q2", Answer: "b", SelectedOption: "a"},
		},
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Evaluation.ID == ev.ID || second.Score != 50 || second.Passed {
		t.Fatalf("unexpected second result: %+v", second)
	}
	evals, _ := f.evaluations.FindByStudentAndCourse(student.ID, course.ID)
	if len(evals) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(evals))
	}
}

func TestSubmitEvaluation_Rejections(t *testing.T) {
	f := newFixture(t)
	f.fake.respond(endpointQuizFeedback, map[string]interface{}{"feedback": []map[string]string{}})
	teacher := f.user(t, "teacher", model.Teacher)
	student := f.user(t, "student", model.Student)
	course := f.course(t, teacher, "Go", sampleModule())
	ctx := context.Background()
	answers := []AnsweredQuestion{{Question: "Q1", Answer: "a", SelectedOption: "a"}}

	_, err := f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{CourseID: course.ID, StudentID: student.ID, Questions: answers})
	if !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("expected not enrolled, got %v", err)
	}

	if _, err := f.enrollment.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	_, err = f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{CourseID: course.ID, StudentID: student.ID, ModuleIndex: 3, Questions: answers})
	if !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected module not found, got %v", err)
	}

	tooMany := 3.0
	_, err = f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{CourseID: course.ID, StudentID: student.ID, Marks: &tooMany, Questions: answers})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected validation error for marks above maximum, got %v", err)
	}

	_, err = f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{CourseID: course.ID, StudentID: student.ID})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected validation error for empty attempt, got %v", err)
	}

	ungenerated := f.course(t, teacher, "Rust", model.Module{Title: "Ownership", Description: "Borrowing"})
	if _, err := f.enrollment.Enroll(ctx, student.ID, ungenerated.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	_, state, err := f.quiz.GetQuiz(ungenerated.ID, 0)
	if err != nil || state != model.QuizNotGenerated {
		t.Fatalf("expected not generated quiz, state=%v err=%v", state, err)
	}
	_, err = f.quiz.SubmitEvaluation(ctx, SubmitEvaluationInput{CourseID: ungenerated.ID, StudentID: student.ID, Questions: answers})
	if !errors.Is(err, util.ErrQuizNotGenerated) {
		t.Fatalf("expected quiz not generated, got %v", err)
	}
	if evals, _ := f.evaluations.FindByStudentAndCourse(student.ID, ungenerated.ID); len(evals) != 0 {
		t.Fatalf("expected no evaluation for an ungenerated quiz, got %d", len(evals))
	}
	progress, err := f.progress.FindByStudentAndCourse(student.ID, ungenerated.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.CompletedQuizzes) != 0 || progress.OverallProgress != 0 {
		t.Fatalf("expected untouched progress, got %+v", progress)
	}

	if f.fake.hitCount(endpointQuizFeedback) != 0 {
		t.Fatalf("rejected attempts must not reach the inference service")
	}
}

func TestGenerateQuiz(t *testing.T) {
	f := newFixture(t)
	f.fake.respond(endpointQuiz, map[string]interface{}{
		"quiz": []map[string]interface{}{
			{"question": "What is Go?", "options": map[string]string{"a": "lang", "b": "game"}, "answer": "A"},
			{"question": "", "options": map[string]string{"a": "x", "b": "y"}, "answer": "a"},
			{"question": "Bad key", "options": map[string]string{"a": "x", "b": "y"}, "answer": "d"},
		},
	})
	teacher := f.user(t, "teacher", model.Teacher)
	course := f.course(t, teacher, "Go", model.Module{Title: "Basics", Description: "Intro"})

	quiz, state, err := f.quiz.GetQuiz(course.ID, 0)
	if err != nil || state != model.QuizNotGenerated || len(quiz.Questions) != 0 {
		t.Fatalf("expected empty quiz before generation, state=%v err=%v", state, err)
	}

	generated, err := f.quiz.GenerateQuiz(context.Background(), course.ID, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(generated.Questions) != 1 || generated.Questions[0].Answer != "a" {
		t.Fatalf("expected one normalized question, got %+v", generated.Questions)
	}

	quiz, state, err = f.quiz.GetQuiz(course.ID, 0)
	if err != nil || state != model.QuizGenerated || len(quiz.Questions) != 1 {
		t.Fatalf("expected stored quiz, state=%v err=%v quiz=%+v", state, err, quiz)
	}
}
