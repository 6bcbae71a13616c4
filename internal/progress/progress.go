// Package progress models learner progress and the achievements it unlocks.
package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/localnerve/lessonsync/internal/models"
)

// MaxTests is how many test results a progress record keeps.
const MaxTests = 50

// ExerciseStats counts completions of one exercise.
type ExerciseStats struct {
	Completed     int     `json:"completed"`
	LastCompleted *string `json:"lastCompleted"`
	BestScore     float64 `json:"bestScore"`
}

// TestResult is one finished test, scored in percent.
type TestResult struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Date    string  `json:"date"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
}

// Progress is the typed view of the progress document.
type Progress struct {
	Exercises      map[string]ExerciseStats `json:"exercises"`
	Tests          []TestResult             `json:"tests"`
	StudyTime      float64                  `json:"studyTime"` // minutes
	LastStudyDate  *string                  `json:"lastStudyDate"`
	Streak         int                      `json:"streak"`
	Achievements   []string                 `json:"achievements"`
	WeeklyActivity map[string]int           `json:"weeklyActivity"`
}

// New returns an empty progress value.
func New() Progress {
	return Progress{
		Exercises:      map[string]ExerciseStats{},
		Tests:          []TestResult{},
		Achievements:   []string{},
		WeeklyActivity: map[string]int{},
	}
}

// FromRecord decodes a stored record. Missing fields keep their zero values.
func FromRecord(rec models.Record) (Progress, error) {
	p := New()
	if len(rec) == 0 {
		return p, nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return p, fmt.Errorf("progress: encode record: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("progress: decode record: %w", err)
	}
	if p.Exercises == nil {
		p.Exercises = map[string]ExerciseStats{}
	}
	if p.WeeklyActivity == nil {
		p.WeeklyActivity = map[string]int{}
	}
	return p, nil
}

// TotalExercises sums completions across all exercises.
func (p Progress) TotalExercises() int {
	total := 0
	for _, ex := range p.Exercises {
		total += ex.Completed
	}
	return total
}

// HasPerfectScore reports whether any test scored 100%.
func (p Progress) HasPerfectScore() bool {
	for _, t := range p.Tests {
		if t.Score == 100 {
			return true
		}
	}
	return false
}

// HasAchievement reports whether id is already unlocked.
func (p Progress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// RecordExercise counts one completion of exercise at now.
func (p *Progress) RecordExercise(exercise string, now time.Time) {
	if p.Exercises == nil {
		p.Exercises = map[string]ExerciseStats{}
	}
	stats := p.Exercises[exercise]
	stats.Completed++
	ts := now.UTC().Format(time.RFC3339)
	stats.LastCompleted = &ts
	p.Exercises[exercise] = stats
	p.UpdateStreak(now)
}

// RecordTest appends a test result, keeping the latest MaxTests.
func (p *Progress) RecordTest(name string, correct, total int, now time.Time) {
	score := 0.0
	if total > 0 {
		score = math.Round(float64(correct) * 100 / float64(total))
	}
	p.Tests = append(p.Tests, TestResult{
		Name:    name,
		Score:   score,
		Date:    now.UTC().Format(time.RFC3339),
		Correct: correct,
		Total:   total,
	})
	if len(p.Tests) > MaxTests {
		p.Tests = p.Tests[len(p.Tests)-MaxTests:]
	}
	p.UpdateStreak(now)
}

// AddStudyTime adds minutes of study.
func (p *Progress) AddStudyTime(minutes float64, now time.Time) {
	p.StudyTime += minutes
	p.UpdateStreak(now)
}

// UpdateStreak marks now as a study day. Studying again on the same day is a
// no-op, the day after the last study day extends the streak, anything else
// restarts it at 1.
func (p *Progress) UpdateStreak(now time.Time) {
	today := dayOf(now)
	if p.LastStudyDate != nil {
		if last, err := time.Parse(time.RFC3339, *p.LastStudyDate); err == nil {
			lastDay := dayOf(last.In(now.Location()))
			switch {
			case lastDay.Equal(today):
				return
			case lastDay.AddDate(0, 0, 1).Equal(today):
				p.Streak++
			default:
				p.Streak = 1
			}
		} else {
			p.Streak = 1
		}
	} else {
		p.Streak = 1
	}

	ts := now.UTC().Format(time.RFC3339)
	p.LastStudyDate = &ts

	if p.WeeklyActivity == nil {
		p.WeeklyActivity = map[string]int{}
	}
	p.WeeklyActivity[fmt.Sprintf("week-%d", int(now.Weekday()))]++
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
