package progress

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/lessonsync/internal/models"
)

func TestRulesUnlocked(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want []string
	}{
		{"empty", New(), nil},
		{
			name: "exercises",
			p: Progress{Exercises: map[string]ExerciseStats{
				"word-cards": {Completed: 3},
				"repeat-it":  {Completed: 2},
			}},
			want: []string{"first-exercise", "five-exercises"},
		},
		{
			name: "already unlocked are skipped",
			p: Progress{
				Exercises:    map[string]ExerciseStats{"word-cards": {Completed: 10}},
				Achievements: []string{"first-exercise", "five-exercises"},
			},
			want: []string{"ten-exercises"},
		},
		{
			name: "tests",
			p:    Progress{Tests: []TestResult{{Name: "a", Score: 80}, {Name: "b", Score: 100}}},
			want: []string{"first-test", "perfect-score"},
		},
		{"week streak", Progress{Streak: 7}, []string{"week-streak"}},
		{"month streak", Progress{Streak: 30}, []string{"week-streak", "month-streak"}},
		{"study hour", Progress{StudyTime: 60}, []string{"study-hour"}},
		{"under an hour", Progress{StudyTime: 59.5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rules{}.Unlocked(tt.p)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unlocked() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateStreak(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := New()

	p.UpdateStreak(day)
	if p.Streak != 1 {
		t.Fatalf("first study day streak = %d, want 1", p.Streak)
	}
	p.UpdateStreak(day.Add(5 * time.Hour))
	if p.Streak != 1 {
		t.Errorf("same day streak = %d, want 1", p.Streak)
	}
	p.UpdateStreak(day.AddDate(0, 0, 1))
	if p.Streak != 2 {
		t.Errorf("next day streak = %d, want 2", p.Streak)
	}
	p.UpdateStreak(day.AddDate(0, 0, 4))
	if p.Streak != 1 {
		t.Errorf("after a gap streak = %d, want 1", p.Streak)
	}
	if got := p.WeeklyActivity["week-2"]; got != 1 {
		t.Errorf("tuesday activity = %d, want 1", got)
	}
}

func TestRecordTestKeepsLatest(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := New()
	for i := 0; i < MaxTests+5; i++ {
		p.RecordTest("t", 2, 3, now)
	}
	if len(p.Tests) != MaxTests {
		t.Errorf("kept %d tests, want %d", len(p.Tests), MaxTests)
	}
	if p.Tests[0].Score != 67 {
		t.Errorf("score = %v, want 67", p.Tests[0].Score)
	}
}

func TestRecordExercise(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := New()
	p.RecordExercise("word-cards", now)
	p.RecordExercise("word-cards", now)
	if got := p.Exercises["word-cards"].Completed; got != 2 {
		t.Errorf("completed = %d, want 2", got)
	}
	if p.TotalExercises() != 2 {
		t.Errorf("TotalExercises() = %d", p.TotalExercises())
	}
}

func TestUnlockRecord(t *testing.T) {
	rec := models.Record{
		"studyTime":    json.Number("75"),
		"streak":       json.Number("2"),
		"achievements": []interface{}{"first-exercise"},
		"custom":       "kept",
	}

	out, ids, err := Unlock(Rules{}, rec)
	if err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	if diff := cmp.Diff([]string{"study-hour"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	want := []interface{}{"first-exercise", "study-hour"}
	if diff := cmp.Diff(want, out["achievements"]); diff != "" {
		t.Errorf("achievements (-want +got):\n%s", diff)
	}
	if out["custom"] != "kept" {
		t.Errorf("unrelated keys must survive, got %#v", out)
	}
	if len(rec["achievements"].([]interface{})) != 1 {
		t.Error("Unlock modified its input")
	}
}

func TestUnlockNothingNew(t *testing.T) {
	rec := models.Record{"streak": json.Number("1")}
	out, ids, err := Unlock(Rules{}, rec)
	if err != nil || ids != nil {
		t.Fatalf("Unlock() = %v, %v", ids, err)
	}
	if _, ok := out["achievements"]; ok {
		t.Error("no new achievements should leave the record untouched")
	}
}
