package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"lifequest/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestService(t *testing.T) (*Service, *testClock, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	clock := &testClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
	svc := NewService(db, WithClock(clock.Now))
	cleanup := func() {
		_ = db.Close()
	}
	return svc, clock, cleanup
}

func TestServiceFirstUseDefaults(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	p := st.Progression
	if p.Level != 1 || p.XP != 0 || p.MaxXP != StarterMaxXP || p.Gold != 0 {
		t.Fatalf("defaults=%+v", p)
	}
	if st.Rank.Title() != "Bronze II" || st.NextRank == nil {
		t.Fatalf("rank=%q next=%v", st.Rank.Title(), st.NextRank)
	}
}

func TestServiceAwardXPPersistsAndLogs(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.AwardXP(ctx, AwardInput{Amount: 250, Category: CategoryFitness, Reason: "marathon"})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if res.LevelAfter != 3 || res.GoldDelta != 125 || res.Attribute != AttributeStrength {
		t.Fatalf("result=%+v", res)
	}

	if _, err := svc.AwardXP(ctx, AwardInput{Amount: -20, Reason: "skipped class"}); err != nil {
		t.Fatalf("AwardXP penalty: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Progression.Level != 3 || snap.Progression.Gold != 105 || snap.Progression.Attributes.Strength != 1 {
		t.Fatalf("persisted=%+v", snap.Progression)
	}

	hist, err := svc.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history len=%d, want 2", len(hist))
	}
	if hist[0].Source != string(SourcePenalty) || hist[0].Amount != -20 {
		t.Fatalf("newest entry=%+v", hist[0])
	}
	if hist[1].Source != string(SourceManual) || hist[1].Reason != "marathon" || hist[1].LevelAfter != 3 {
		t.Fatalf("oldest entry=%+v", hist[1])
	}
}

func TestServiceSpendGoldRejectionLeavesState(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AwardXP(ctx, AwardInput{Amount: 40}); err != nil {
		t.Fatalf("AwardXP: %v", err)
	}

	_, err := svc.SpendGold(ctx, 21, "pizza")
	var insufficient InsufficientGoldError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err=%v, want InsufficientGoldError", err)
	}

	res, err := svc.SpendGold(ctx, 15, "coffee")
	if err != nil {
		t.Fatalf("SpendGold: %v", err)
	}
	if res.GoldAfter != 5 {
		t.Fatalf("gold after=%d, want 5", res.GoldAfter)
	}
}

func TestServiceHabitCheckInRewardsOncePerDay(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, "Push-ups", CategoryFitness)
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	first, err := svc.CheckInHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("check-in #1: %v", err)
	}
	if first.Award == nil || first.Award.Amount != svc.Balance().HabitCheckInXP {
		t.Fatalf("first check-in award=%+v", first.Award)
	}

	again, err := svc.CheckInHabit(ctx, "push-ups")
	if err != nil {
		t.Fatalf("check-in #2: %v", err)
	}
	if again.Outcome.Result != CheckInAlreadyDone || again.Award != nil {
		t.Fatalf("same-day check-in=%+v", again)
	}

	clock.advanceDays(1)
	next, err := svc.CheckInHabit(ctx, h.ID[:8])
	if err != nil {
		t.Fatalf("check-in day 2: %v", err)
	}
	if next.Habit.Streak != 2 || next.Outcome.Result != CheckInContinued {
		t.Fatalf("day 2=%+v", next)
	}

	clock.advanceDays(3)
	gap, err := svc.CheckInHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("check-in after gap: %v", err)
	}
	if gap.Habit.Streak != 1 || gap.Outcome.Result != CheckInRestarted {
		t.Fatalf("after gap=%+v", gap)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := 3 * svc.Balance().HabitCheckInXP
	if snap.Progression.XP != want || snap.Progression.Attributes.Strength != 3 {
		t.Fatalf("progression=%+v, want xp %d and strength 3", snap.Progression, want)
	}
}

func TestServiceBreakAndRemoveHabit(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, "Journal", CategoryMindfulness)
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	for i := 0; i < FormedStreak; i++ {
		if _, err := svc.CheckInHabit(ctx, h.ID); err != nil {
			t.Fatalf("check-in %d: %v", i, err)
		}
		clock.advanceDays(1)
	}

	broken, err := svc.BreakHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("BreakHabit: %v", err)
	}
	if broken.Streak != 0 || broken.LastCompleted != nil || !broken.Formed {
		t.Fatalf("broken=%+v", broken)
	}

	if _, err := svc.RemoveHabit(ctx, "journal"); err != nil {
		t.Fatalf("RemoveHabit: %v", err)
	}
	_, err = svc.CheckInHabit(ctx, h.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err=%v, want NotFoundError", err)
	}
}

func TestServiceQuestLifecycle(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q, err := svc.AddQuest(ctx, QuestInput{Title: "Clean kitchen", Category: CategoryChores, Difficulty: DifficultyEasy})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	if q.XP != 10 {
		t.Fatalf("quest xp=%d, want 10", q.XP)
	}

	if _, err := svc.AddQuest(ctx, QuestInput{Title: "Final exam", Difficulty: DifficultyBoss}); err == nil {
		t.Fatalf("expected boss raid without deadline to be rejected")
	}

	res, err := svc.CompleteQuest(ctx, "clean kitchen")
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if !res.Quest.Done || res.Quest.CompletedOn == nil || res.Award.Attribute != AttributeCharisma {
		t.Fatalf("completed=%+v", res)
	}

	if _, err := svc.CompleteQuest(ctx, q.ID); err == nil {
		t.Fatalf("expected error completing a done quest")
	}

	if _, err := svc.RemoveQuest(ctx, q.ID); err != nil {
		t.Fatalf("RemoveQuest: %v", err)
	}
	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.OpenQuests) != 0 {
		t.Fatalf("open quests=%+v", st.OpenQuests)
	}
}

func TestServiceFailOverdueRaids(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AwardXP(ctx, AwardInput{Amount: 80}); err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	due := svc.Today().AddDays(2)
	raid, err := svc.AddQuest(ctx, QuestInput{Title: "Project demo", Category: CategoryWork, Difficulty: DifficultyBoss, Due: &due})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}

	failed, err := svc.FailOverdueRaids(ctx)
	if err != nil || len(failed) != 0 {
		t.Fatalf("before deadline: failed=%v err=%v", failed, err)
	}

	clock.advanceDays(3)
	failed, err = svc.FailOverdueRaids(ctx)
	if err != nil {
		t.Fatalf("FailOverdueRaids: %v", err)
	}
	if len(failed) != 1 || failed[0].Quest.ID != raid.ID || !failed[0].Quest.Failed {
		t.Fatalf("failed=%+v", failed)
	}
	if failed[0].Penalty.Amount != -raid.XP/5 {
		t.Fatalf("penalty=%d, want %d", failed[0].Penalty.Amount, -raid.XP/5)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Progression.XP != 80-raid.XP/5 || snap.Progression.Gold != 40-raid.XP/5 {
		t.Fatalf("after penalty=%+v", snap.Progression)
	}

	again, err := svc.FailOverdueRaids(ctx)
	if err != nil || len(again) != 0 {
		t.Fatalf("second sweep failed=%v err=%v", again, err)
	}
}

func TestServiceHydrationGoalPaysOncePerDay(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	goal := svc.Balance().HydrationGoal

	v, err := svc.UpdateHydration(ctx, goal-1)
	if err != nil {
		t.Fatalf("UpdateHydration: %v", err)
	}
	if v.Award != nil {
		t.Fatalf("paid before goal")
	}
	v, err = svc.UpdateHydration(ctx, 1)
	if err != nil {
		t.Fatalf("UpdateHydration: %v", err)
	}
	if v.Award == nil || v.Award.Attribute != AttributeVitality {
		t.Fatalf("goal award=%+v", v.Award)
	}
	v, _ = svc.UpdateHydration(ctx, 1)
	if v.Award != nil {
		t.Fatalf("goal paid twice")
	}

	clock.advanceDays(1)
	v, err = svc.UpdateHydration(ctx, 1)
	if err != nil {
		t.Fatalf("UpdateHydration next day: %v", err)
	}
	if v.Result.Glasses != 1 {
		t.Fatalf("glasses=%d, want reset to 1", v.Result.Glasses)
	}
}

func TestServiceTimetable(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	today := svc.Today()
	c, err := svc.AddClass(ctx, ClassInput{Name: "Biology", Weekday: today.Weekday().String(), Start: "9:30", Weeks: "all"})
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if _, err := svc.AddClass(ctx, ClassInput{Name: "Bad", Weekday: "someday", Start: "9:30"}); err == nil {
		t.Fatalf("expected bad weekday to be rejected")
	}

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.ClassesToday) != 1 || st.ClassesToday[0].Start != "09:30" {
		t.Fatalf("classes today=%+v", st.ClassesToday)
	}

	if _, err := svc.RemoveClass(ctx, c.ID); err != nil {
		t.Fatalf("RemoveClass: %v", err)
	}
}

func TestServiceResetRestoresDefaults(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AwardXP(ctx, AwardInput{Amount: 1000, Category: CategoryStudy}); err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if _, err := svc.AddHabit(ctx, "Floss", CategoryHealth); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Progression != NewProgression(StarterMaxXP) || len(snap.Habits) != 0 {
		t.Fatalf("after reset=%+v", snap)
	}
	hist, _ := svc.History(ctx, 10)
	if len(hist) != 0 {
		t.Fatalf("history not cleared: %+v", hist)
	}
}

func TestServiceCorruptSnapshotFallsBack(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	body := []byte(`{"progression": {"level": 5, "xp": "oops", "maxXp": 506, "gold": 9}, "habits": []}`)
	if err := storage.NewSnapshotRepo(svc.db).Put(ctx, storage.MainSnapshotKey, body, time.Now()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status with corrupt snapshot: %v", err)
	}
	p := st.Progression
	if p.Level != 5 || p.XP != 0 || p.MaxXP != 506 || p.Gold != 9 {
		t.Fatalf("progression=%+v", p)
	}

	if _, err := svc.AddHabit(ctx, "Walk", CategoryFitness); err != nil {
		t.Fatalf("AddHabit after corrupt load: %v", err)
	}
}

func TestServiceListQuestsOrdering(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	today := svc.Today()
	late, soon := today.AddDays(9), today.AddDays(2)
	for _, in := range []QuestInput{
		{Title: "No deadline"},
		{Title: "Late", Due: &late},
		{Title: "Soon", Due: &soon},
	} {
		if _, err := svc.AddQuest(ctx, in); err != nil {
			t.Fatalf("AddQuest %q: %v", in.Title, err)
		}
	}
	if _, err := svc.CompleteQuest(ctx, "Late"); err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}

	open, err := svc.ListQuests(ctx, false)
	if err != nil {
		t.Fatalf("ListQuests: %v", err)
	}
	if len(open) != 2 || open[0].Title != "Soon" || open[1].Title != "No deadline" {
		t.Fatalf("open=%+v", open)
	}

	all, _ := svc.ListQuests(ctx, true)
	if len(all) != 3 || all[2].Title != "Late" {
		t.Fatalf("all=%+v", all)
	}
}
