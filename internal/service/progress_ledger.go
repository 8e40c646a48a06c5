package service

import (
	"math"
	"time"

	"eduverse_backend/internal/model"
)

// MarksPerQuestion is the weight of one correct answer.
const MarksPerQuestion = 2

// masteryReviewThreshold marks a concept for review below this level (0-10).
const masteryReviewThreshold = 6

// QuizScore converts marks into a percentage of the maximum for n questions.
func QuizScore(marks float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	score := marks / float64(MarksPerQuestion*n) * 100
	return math.Max(0, math.Min(100, score))
}

func QuizPassed(marks float64, n int, passingScore float64) bool {
	if passingScore <= 0 {
		passingScore = model.DefaultPassingScore
	}
	return n > 0 && QuizScore(marks, n) >= passingScore
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// touchStreak extends the streak on consecutive days and resets it after a gap.
func touchStreak(p *model.Progress, now time.Time) {
	switch {
	case p.Streak == 0 || p.LastActive.IsZero():
		p.Streak = 1
	case sameDay(p.LastActive, now):
	case sameDay(p.LastActive.AddDate(0, 0, 1), now):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActive = now
}

func moduleProgressFor(p *model.Progress, moduleIdx int) *model.ModuleProgress {
	for i := range p.ModuleProgress {
		if p.ModuleProgress[i].ModuleIndex == moduleIdx {
			return &p.ModuleProgress[i]
		}
	}
	p.ModuleProgress = append(p.ModuleProgress, model.ModuleProgress{
		ModuleIndex:       moduleIdx,
		CompletedContents: []int{},
		QuizAttempts:      []model.QuizAttempt{},
	})
	return &p.ModuleProgress[len(p.ModuleProgress)-1]
}

func updateMastery(p *model.Progress, answers []model.AnswerRecord, now time.Time) {
	for _, a := range answers {
		for _, tag := range a.ConceptTags {
			idx := -1
			for i := range p.ConceptMastery {
				if p.ConceptMastery[i].ConceptTag == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				p.ConceptMastery = append(p.ConceptMastery, model.ConceptMastery{ConceptTag: tag})
				idx = len(p.ConceptMastery) - 1
			}
			cm := &p.ConceptMastery[idx]
			cm.Attempts++
			if a.Correct {
				cm.Correct++
			}
			cm.MasteryLevel = round1(10 * float64(cm.Correct) / float64(cm.Attempts))
			cm.ConfidenceScore = math.Min(10, float64(cm.Attempts))
			cm.NeedsReview = cm.MasteryLevel < masteryReviewThreshold
			cm.LastUpdated = now
		}
	}
}

// ApplyQuizAttempt records a graded attempt in the ledger: the module's
// attempt history, concept mastery, overall progress and the activity streak.
func ApplyQuizAttempt(p *model.Progress, moduleIdx, moduleCount int, attempt model.QuizAttempt, passed bool) {
	mp := moduleProgressFor(p, moduleIdx)
	mp.QuizAttempts = append(mp.QuizAttempts, attempt)
	mp.LastQuizScore = attempt.Score
	if passed {
		mp.Completed = true
	}

	updateMastery(p, attempt.Answers, attempt.Date)

	if moduleCount > 0 {
		completed := 0
		for _, m := range p.ModuleProgress {
			if m.Completed && m.ModuleIndex < moduleCount {
				completed++
			}
		}
		p.OverallProgress = round1(100 * float64(completed) / float64(moduleCount))
	}

	touchStreak(p, attempt.Date)
}
