package progress

import (
	"github.com/localnerve/lessonsync/internal/models"
)

// Achievement describes one unlockable badge.
type Achievement struct {
	ID          string
	Name        string
	Description string
	unlocked    func(Progress) bool
}

// Achievements lists every badge in display order.
var Achievements = []Achievement{
	{"first-exercise", "Getting Started", "Complete your first exercise", func(p Progress) bool { return p.TotalExercises() >= 1 }},
	{"five-exercises", "On a Roll", "Complete 5 exercises", func(p Progress) bool { return p.TotalExercises() >= 5 }},
	{"ten-exercises", "Dedicated Learner", "Complete 10 exercises", func(p Progress) bool { return p.TotalExercises() >= 10 }},
	{"first-test", "Test Taker", "Complete your first test", func(p Progress) bool { return len(p.Tests) >= 1 }},
	{"perfect-score", "Perfect Score", "Get 100% on a test", Progress.HasPerfectScore},
	{"week-streak", "Weekly Warrior", "Study 7 days in a row", func(p Progress) bool { return p.Streak >= 7 }},
	{"month-streak", "Monthly Master", "Study 30 days in a row", func(p Progress) bool { return p.Streak >= 30 }},
	{"study-hour", "Hour of Power", "Study for 1 hour total", func(p Progress) bool { return p.StudyTime >= 60 }},
}

// Evaluator decides which achievements a progress value newly unlocks.
type Evaluator interface {
	Unlocked(p Progress) []string
}

// Rules evaluates the built-in Achievements.
type Rules struct{}

// Unlocked returns the ids of achievements p qualifies for but has not
// unlocked yet, in display order.
func (Rules) Unlocked(p Progress) []string {
	var ids []string
	for _, a := range Achievements {
		if !p.HasAchievement(a.ID) && a.unlocked(p) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Evaluate appends every newly unlocked achievement to p.
func Evaluate(e Evaluator, p *Progress) []string {
	ids := e.Unlocked(*p)
	p.Achievements = append(p.Achievements, ids...)
	return ids
}

// Unlock re-evaluates the achievements of a stored progress record. The
// returned record is rec with its achievements list extended; every other key
// is left as it was.
func Unlock(e Evaluator, rec models.Record) (models.Record, []string, error) {
	p, err := FromRecord(rec)
	if err != nil {
		return rec, nil, err
	}
	ids := Evaluate(e, &p)
	if len(ids) == 0 {
		return rec, nil, nil
	}

	out := rec.Clone()
	if out == nil {
		out = models.Record{}
	}
	achievements := make([]interface{}, 0, len(p.Achievements))
	for _, id := range p.Achievements {
		achievements = append(achievements, id)
	}
	out["achievements"] = achievements
	return out, ids, nil
}
