package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeSnapshotEmptyGivesDefaults(t *testing.T) {
	b := DefaultBalance()
	got, problems := DecodeSnapshot(nil, b)
	if len(problems) != 0 {
		t.Fatalf("problems=%v", problems)
	}
	if diff := cmp.Diff(NewSnapshot(b), got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeSnapshot(t *testing.T) {
	b := DefaultBalance()
	last := Date{Year: 2026, Month: 3, Day: 9}
	due := Date{Year: 2026, Month: 4, Day: 1}

	want := NewSnapshot(b)
	want.Progression = Progression{Level: 4, XP: 12, MaxXP: 337, Gold: -3, Attributes: Attributes{Strength: 2, Charisma: 1}}
	want.Habits["h1"] = Habit{ID: "h1", Name: "Run", Category: CategoryFitness, Streak: 22, LastCompleted: &last, Formed: true, CreatedOn: last}
	want.Quests = []Quest{{ID: "q1", Title: "Thesis draft", Category: CategoryStudy, Difficulty: DifficultyBoss, XP: 150, Due: &due}}
	want.Hydration = Hydration{Date: last, Glasses: 3, Goal: 8}
	want.Timetable = []Class{{ID: "c1", Name: "Algebra", Weekday: 2, Start: "08:15", Weeks: WeeksOdd}}

	data, err := EncodeSnapshot(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, problems := DecodeSnapshot(data, b)
	if len(problems) != 0 {
		t.Fatalf("problems=%v", problems)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSnapshotFallsBackPerField(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"progression": {"level": "nine", "xp": 40, "maxXp": -5, "gold": 17, "attributes": {"strength": 3, "wisdom": "lots"}},
		"habits": {
			"h1": {"name": "Meditate", "category": "mindfulness", "streakCount": 25, "lastCompletedDate": "yesterday", "formed": false},
			"h2": "garbage"
		},
		"quests": [{"id": "q1", "title": "Laundry", "difficulty": "impossible", "xp": 10}, 42],
		"hydration": {"glasses": "many"}
	}`)

	got, problems := DecodeSnapshot(data, DefaultBalance())

	p := got.Progression
	if p.Level != 1 || p.XP != 40 || p.MaxXP != StarterMaxXP || p.Gold != 17 {
		t.Fatalf("progression=%+v", p)
	}
	if p.Attributes.Strength != 3 || p.Attributes.Wisdom != 0 {
		t.Fatalf("attributes=%+v", p.Attributes)
	}

	if len(got.Habits) != 1 {
		t.Fatalf("habits=%v, want only h1", got.Habits)
	}
	h := got.Habits["h1"]
	if h.ID != "h1" || h.Name != "Meditate" || h.Streak != 25 || h.LastCompleted != nil || !h.Formed {
		t.Fatalf("habit=%+v", h)
	}

	if len(got.Quests) != 1 || got.Quests[0].Difficulty != DefaultDifficulty {
		t.Fatalf("quests=%+v", got.Quests)
	}
	if got.Hydration.Goal != DefaultHydrationGoal || got.Hydration.Glasses != 0 {
		t.Fatalf("hydration=%+v", got.Hydration)
	}

	wantProblems := []string{
		"progression.level",
		"progression.attributes.wisdom",
		"habits.h1.lastCompletedDate",
		"habits.h2",
		"quests[1]",
		"hydration",
	}
	for _, w := range wantProblems {
		if !containsPrefix(problems, w) {
			t.Fatalf("no problem reported for %s in %v", w, problems)
		}
	}
}

func TestDecodeSnapshotResetsXPPastThreshold(t *testing.T) {
	data := []byte(`{"progression": {"level": 1, "xp": 100000000000000, "maxXp": 1, "gold": 4}}`)

	done := make(chan struct{})
	var (
		got      Snapshot
		problems []string
	)
	go func() {
		got, problems = DecodeSnapshot(data, DefaultBalance())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("DecodeSnapshot did not return on a corrupt xp/maxXp pair")
	}

	p := got.Progression
	if p.Level != 1 || p.XP != 0 || p.MaxXP != StarterMaxXP || p.Gold != 4 {
		t.Fatalf("progression=%+v", p)
	}
	if !containsPrefix(problems, "progression.xp") || !containsPrefix(problems, "progression.maxXp") {
		t.Fatalf("problems=%v", problems)
	}
}

func TestDecodeSnapshotNotJSON(t *testing.T) {
	got, problems := DecodeSnapshot([]byte("{{{"), DefaultBalance())
	if len(problems) != 1 {
		t.Fatalf("problems=%v", problems)
	}
	if got.Progression.Level != 1 || got.Habits == nil {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
