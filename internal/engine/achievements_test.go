package engine

import "testing"

func earnedIDs(as []Achievement) map[string]bool {
	out := map[string]bool{}
	for _, a := range as {
		if a.Earned {
			out[a.ID] = true
		}
	}
	return out
}

func TestAchievementsFreshSnapshot(t *testing.T) {
	c := NewAchievementChecker(NewSnapshot(DefaultBalance()))
	if n := c.CountEarned(); n != 0 {
		t.Fatalf("fresh snapshot earned %d achievements", n)
	}
}

func TestAchievementsFromProgress(t *testing.T) {
	snap := NewSnapshot(DefaultBalance())
	snap.Progression.Level = 5
	snap.Progression.Attributes.Strength = 10
	snap.Habits["h1"] = Habit{ID: "h1", Name: "Run", Streak: 0, Formed: true}
	snap.Quests = []Quest{
		{ID: "q1", Title: "Exam", Difficulty: DifficultyBoss, Done: true},
		{ID: "q2", Title: "Missed", Difficulty: DifficultyBoss, Done: true, Failed: true},
	}

	got := earnedIDs(NewAchievementChecker(snap).GetAchievements())
	for _, id := range []string{"getting_started", "on_the_path", "strong", "first_quest", "dragon_slayer", "habit_former", "on_a_roll"} {
		if !got[id] {
			t.Errorf("%s not earned", id)
		}
	}
	for _, id := range []string{"seasoned", "productive", "creature_of_habit", "hoarder"} {
		if got[id] {
			t.Errorf("%s earned too early", id)
		}
	}
}
