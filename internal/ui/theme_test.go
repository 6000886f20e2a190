package ui

import (
	"testing"

	"lifequest/internal/engine"
)

func TestBar(t *testing.T) {
	tests := []struct {
		value, total, width int
		want                string
	}{
		{0, 100, 10, "[----------]"},
		{50, 100, 10, "[#####-----]"},
		{150, 100, 4, "[####]"},
		{-5, 0, 2, "[---]"},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.total, tt.width); got != tt.want {
			t.Fatalf("Bar(%d,%d,%d)=%q want %q", tt.value, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestHabitIcon(t *testing.T) {
	today, _ := engine.ParseDate("2026-04-02")
	yesterday := today.AddDays(-1)
	old := today.AddDays(-5)

	if got := HabitIcon(engine.Habit{Formed: true}, today); got != IconTrophy {
		t.Fatalf("formed icon=%q", got)
	}
	if got := HabitIcon(engine.Habit{Streak: 3, LastCompleted: &yesterday}, today); got != IconFire {
		t.Fatalf("alive icon=%q", got)
	}
	if got := HabitIcon(engine.Habit{Streak: 3, LastCompleted: &old}, today); got != IconSeed {
		t.Fatalf("lapsed icon=%q", got)
	}
}
