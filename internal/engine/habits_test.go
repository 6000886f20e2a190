package engine

import (
	"reflect"
	"testing"
	"time"
)

func day(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestCheckInSameDayIsNoop(t *testing.T) {
	d := day(t, "2026-03-10")
	h := Habit{ID: "h1", Name: "Stretch"}

	once, first := CheckIn(h, d)
	twice, second := CheckIn(once, d)

	if !first.Rewarded() {
		t.Fatalf("first check-in should count, got %q", first.Result)
	}
	if second.Result != CheckInAlreadyDone || second.Rewarded() {
		t.Fatalf("second check-in result=%q, want already_done", second.Result)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("same-day check-in changed state: %+v vs %+v", once, twice)
	}
}

func TestCheckInContinuesOnNextDay(t *testing.T) {
	d := day(t, "2026-02-28")
	h := Habit{Streak: 4, LastCompleted: &d}

	got, out := CheckIn(h, day(t, "2026-03-01"))
	if got.Streak != 5 || out.Result != CheckInContinued {
		t.Fatalf("streak=%d result=%q, want 5/continued", got.Streak, out.Result)
	}
	if !got.LastCompleted.SameDay(day(t, "2026-03-01")) {
		t.Fatalf("LastCompleted=%s", got.LastCompleted)
	}
}

func TestCheckInRestartsAfterGap(t *testing.T) {
	d := day(t, "2026-03-10")
	h := Habit{Streak: 9, LastCompleted: &d}

	got, out := CheckIn(h, d.AddDays(3))
	if got.Streak != 1 || out.Result != CheckInRestarted {
		t.Fatalf("streak=%d result=%q, want 1/restarted", got.Streak, out.Result)
	}
	if !out.Rewarded() {
		t.Fatalf("restart should still be reward-worthy")
	}
}

func TestCheckInFirstEverStartsAtOne(t *testing.T) {
	got, out := CheckIn(Habit{}, day(t, "2026-01-01"))
	if got.Streak != 1 || out.Result != CheckInRestarted || got.Stage() != HabitActive {
		t.Fatalf("got streak=%d result=%q stage=%q", got.Streak, out.Result, got.Stage())
	}
}

func TestCheckInStaleDateDoesNotRewind(t *testing.T) {
	d := day(t, "2026-03-10")
	h := Habit{Streak: 3, LastCompleted: &d}

	got, out := CheckIn(h, d.AddDays(-2))
	if out.Result != CheckInStale || out.Rewarded() {
		t.Fatalf("result=%q, want stale", out.Result)
	}
	if got.Streak != 3 || !got.LastCompleted.SameDay(d) {
		t.Fatalf("stale check-in changed habit: %+v", got)
	}
}

func TestFormedIsSticky(t *testing.T) {
	start := day(t, "2026-01-01")
	h := Habit{Name: "Read"}

	var out CheckInOutcome
	formedOn := 0
	for i := 0; i < FormedStreak; i++ {
		h, out = CheckIn(h, start.AddDays(i))
		if out.BecameFormed {
			formedOn = i + 1
		}
	}
	if !h.Formed || h.Streak != FormedStreak || formedOn != FormedStreak {
		t.Fatalf("after %d days: streak=%d formed=%v formedOn=%d", FormedStreak, h.Streak, h.Formed, formedOn)
	}

	h = BreakHabit(h)
	if h.Streak != 0 || h.LastCompleted != nil {
		t.Fatalf("break left streak=%d last=%v", h.Streak, h.LastCompleted)
	}
	if !h.Formed || h.Stage() != HabitFormed {
		t.Fatalf("break cleared formed")
	}

	h, out = CheckIn(h, start.AddDays(40))
	if !h.Formed || out.BecameFormed || h.Streak != 1 {
		t.Fatalf("after restart: %+v %+v", h, out)
	}
	h = BreakHabit(BreakHabit(h))
	if !h.Formed {
		t.Fatalf("repeated breaks cleared formed")
	}
}

func TestStreakAlive(t *testing.T) {
	d := day(t, "2026-05-01")
	h := Habit{Streak: 2, LastCompleted: &d}
	if !h.StreakAlive(d) || !h.StreakAlive(d.AddDays(1)) {
		t.Fatalf("streak should be alive today and tomorrow")
	}
	if h.StreakAlive(d.AddDays(2)) {
		t.Fatalf("streak should be dead after a missed day")
	}
}

func TestDateArithmetic(t *testing.T) {
	a := day(t, "2026-03-28")
	b := day(t, "2026-04-02")
	if got := a.DaysUntil(b); got != 5 {
		t.Fatalf("DaysUntil=%d, want 5", got)
	}
	if got := b.DaysUntil(a); got != -5 {
		t.Fatalf("DaysUntil reversed=%d, want -5", got)
	}
	if !day(t, "2024-02-28").IsDayBefore(day(t, "2024-02-29")) {
		t.Fatalf("leap day not consecutive")
	}
	if !day(t, "2025-12-31").IsDayBefore(day(t, "2026-01-01")) {
		t.Fatalf("year boundary not consecutive")
	}

	// Late evening and early morning on consecutive days in a DST zone.
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	late := DateOf(time.Date(2026, 3, 28, 23, 59, 0, 0, loc))
	early := DateOf(time.Date(2026, 3, 29, 0, 1, 0, 0, loc))
	if !late.IsDayBefore(early) {
		t.Fatalf("%s -> %s should be consecutive", late, early)
	}
}

func TestDateJSON(t *testing.T) {
	d := day(t, "2026-07-04")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-07-04"` {
		t.Fatalf("marshal=%s", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip %v != %v", back, d)
	}
	if err := back.UnmarshalJSON([]byte(`"07/04/2026"`)); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}
