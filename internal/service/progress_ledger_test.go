package service

import (
	"testing"
	"time"

	"eduverse_backend/internal/model"
)

func TestQuizScoreAndPassed(t *testing.T) {
	cases := []struct {
		marks   float64
		n       int
		passing float64
		score   float64
		passed  bool
	}{
		{marks: 6, n: 5, passing: 70, score: 60, passed: false},
		{marks: 8, n: 5, passing: 70, score: 80, passed: true},
		{marks: 7, n: 5, passing: 70, score: 70, passed: true},
		{marks: 7, n: 5, passing: 0, score: 70, passed: true},
		{marks: 0, n: 0, passing: 70, score: 0, passed: false},
	}
	for _, tc := range cases {
		if got := QuizScore(tc.marks, tc.n); got != tc.score {
			t.Fatalf("QuizScore(%v, %d) = %v, want %v", tc.marks, tc.n, got, tc.score)
		}
		if got := QuizPassed(tc.marks, tc.n, tc.passing); got != tc.passed {
			t.Fatalf("QuizPassed(%v, %d, %v) = %v, want %v", tc.marks, tc.n, tc.passing, got, tc.passed)
		}
	}
}

func TestTouchStreak(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := &model.Progress{}

	touchStreak(p, day)
	if p.Streak != 1 {
		t.Fatalf("expected streak 1 on first activity, got %d", p.Streak)
	}
	touchStreak(p, day.Add(3*time.Hour))
	if p.Streak != 1 {
		t.Fatalf("expected same-day activity to keep streak 1, got %d", p.Streak)
	}
	touchStreak(p, day.AddDate(0, 0, 1))
	if p.Streak != 2 {
		t.Fatalf("expected consecutive day to extend streak to 2, got %d", p.Streak)
	}
	touchStreak(p, day.AddDate(0, 0, 5))
	if p.Streak != 1 {
		t.Fatalf("expected a gap to reset streak, got %d", p.Streak)
	}
}

func TestApplyQuizAttempt(t *testing.T) {
	p := model.NewProgress(1, 1)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ApplyQuizAttempt(&p, 0, 2, model.QuizAttempt{
		EvaluationID: 1,
		Date:         now,
		Score:        50,
		Answers: []model.AnswerRecord{
			{QuestionIndex: 0, Correct: true, ConceptTags: []string{"vars"}},
			{QuestionIndex: 1, Correct: false, ConceptTags: []string{"vars", "types"}},
		},
	}, false)

	if len(p.ModuleProgress) != 1 || p.ModuleProgress[0].Completed {
		t.Fatalf("unexpected module progress after failed attempt: %+v", p.ModuleProgress)
	}
	if p.OverallProgress != 0 {
		t.Fatalf("expected overall 0, got %v", p.OverallProgress)
	}
	if len(p.ConceptMastery) != 2 {
		t.Fatalf("expected 2 concepts, got %+v", p.ConceptMastery)
	}
	vars := p.ConceptMastery[0]
	if vars.ConceptTag != "vars" || vars.Attempts != 2 || vars.Correct != 1 || vars.MasteryLevel != 5 || !vars.NeedsReview {
		t.Fatalf("unexpected vars mastery: %+v", vars)
	}

	ApplyQuizAttempt(&p, 0, 2, model.QuizAttempt{
		EvaluationID: 2,
		Date:         now.AddDate(0, 0, 1),
		Score:        100,
		Answers: []model.AnswerRecord{
			{QuestionIndex: 0, Correct: true, ConceptTags: []string{"vars"}},
		},
	}, true)

	mp := p.ModuleProgress[0]
	if !mp.Completed || len(mp.QuizAttempts) != 2 || mp.LastQuizScore != 100 {
		t.Fatalf("unexpected module progress after pass: %+v", mp)
	}
	if p.OverallProgress != 50 {
		t.Fatalf("expected overall 50, got %v", p.OverallProgress)
	}
	if p.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", p.Streak)
	}
	if p.ConceptMastery[0].MasteryLevel != 6.7 || p.ConceptMastery[0].NeedsReview {
		t.Fatalf("unexpected vars mastery after pass: %+v", p.ConceptMastery[0])
	}
}
