package engine

import (
	"testing"
	"time"
)

func TestClassesOnWeekParity(t *testing.T) {
	classes := []Class{
		{ID: "a", Name: "Physics", Weekday: time.Monday, Start: "10:00", Weeks: WeeksAll},
		{ID: "b", Name: "Lab", Weekday: time.Monday, Start: "08:00", Weeks: WeeksEven},
		{ID: "c", Name: "Seminar", Weekday: time.Monday, Start: "12:00", Weeks: WeeksOdd},
		{ID: "d", Name: "Chemistry", Weekday: time.Tuesday, Start: "09:00", Weeks: WeeksAll},
	}

	// 2026-03-02 is a Monday in ISO week 10; 2026-03-09 is week 11.
	even := day(t, "2026-03-02")
	odd := day(t, "2026-03-09")
	if _, w := even.ISOWeek(); w != 10 {
		t.Fatalf("ISO week=%d, want 10", w)
	}

	got := ClassesOn(classes, even)
	if len(got) != 2 || got[0].Name != "Lab" || got[1].Name != "Physics" {
		t.Fatalf("even week classes=%+v", got)
	}
	got = ClassesOn(classes, odd)
	if len(got) != 2 || got[0].Name != "Physics" || got[1].Name != "Seminar" {
		t.Fatalf("odd week classes=%+v", got)
	}
	if got := ClassesOn(classes, day(t, "2026-03-04")); len(got) != 0 {
		t.Fatalf("wednesday classes=%+v", got)
	}
}

func TestParseTimetableInputs(t *testing.T) {
	if d, err := ParseWeekday("Tue"); err != nil || d != time.Tuesday {
		t.Fatalf("ParseWeekday(Tue)=%v,%v", d, err)
	}
	if _, err := ParseWeekday("t"); err == nil {
		t.Fatalf("ambiguous weekday accepted")
	}
	if s, err := ParseClock("8:05"); err != nil || s != "08:05" {
		t.Fatalf("ParseClock=%q,%v", s, err)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("bad clock accepted")
	}
	if w, err := ParseWeekParity(""); err != nil || w != WeeksAll {
		t.Fatalf("ParseWeekParity(\"\")=%q,%v", w, err)
	}
}

func TestUpdateHydration(t *testing.T) {
	d := day(t, "2026-06-01")
	h := Hydration{Goal: 3}

	h, res := UpdateHydration(h, d, 2)
	if res.GoalReached || h.Glasses != 2 {
		t.Fatalf("after +2: %+v %+v", h, res)
	}
	h, res = UpdateHydration(h, d, 1)
	if !res.GoalReached {
		t.Fatalf("goal not reached at 3/3")
	}
	h, res = UpdateHydration(h, d, 1)
	if res.GoalReached {
		t.Fatalf("goal paid twice in a day")
	}
	h, _ = UpdateHydration(h, d, -10)
	if h.Glasses != 0 {
		t.Fatalf("glasses=%d, want clamp at 0", h.Glasses)
	}
	h, res = UpdateHydration(h, d, 3)
	if res.GoalReached {
		t.Fatalf("goal paid again after dropping below it")
	}

	h, _ = UpdateHydration(Hydration{Date: d, Glasses: 5, Goal: 3}, d.AddDays(1), 1)
	if h.Glasses != 1 || !h.Date.SameDay(d.AddDays(1)) {
		t.Fatalf("new day did not reset: %+v", h)
	}
}
