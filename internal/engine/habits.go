package engine

// FormedStreak is the consecutive-day streak at which a habit counts as formed.
const FormedStreak = 21

type Habit struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Streak        int      `json:"streakCount"`
	LastCompleted *Date    `json:"lastCompletedDate"`
	Formed        bool     `json:"formed"`
	CreatedOn     Date     `json:"createdOn"`
	Blueprint     string   `json:"blueprint,omitempty"`
}

type HabitStage string

const (
	HabitFresh  HabitStage = "fresh"
	HabitActive HabitStage = "active"
	HabitFormed HabitStage = "formed"
)

// Stage reports the habit's place in the fresh -> active -> formed progression.
// A formed habit stays formed even after its streak is broken.
func (h Habit) Stage() HabitStage {
	switch {
	case h.Formed:
		return HabitFormed
	case h.Streak > 0:
		return HabitActive
	default:
		return HabitFresh
	}
}

type CheckInResult string

const (
	CheckInContinued   CheckInResult = "continued"
	CheckInRestarted   CheckInResult = "restarted"
	CheckInAlreadyDone CheckInResult = "already_done"
	// CheckInStale means today is before the last recorded check-in (clock skew).
	CheckInStale CheckInResult = "stale"
)

type CheckInOutcome struct {
	Result       CheckInResult
	StreakBefore int
	StreakAfter  int
	BecameFormed bool
}

// Rewarded reports whether the check-in counted and so earns its reward.
func (o CheckInOutcome) Rewarded() bool {
	return o.Result == CheckInContinued || o.Result == CheckInRestarted
}

// CheckIn records a completion for today. At most one check-in counts per
// calendar day; the streak grows only on consecutive days and otherwise restarts at 1.
func CheckIn(h Habit, today Date) (Habit, CheckInOutcome) {
	out := CheckInOutcome{StreakBefore: h.Streak, StreakAfter: h.Streak}

	if h.LastCompleted != nil {
		switch gap := h.LastCompleted.DaysUntil(today); {
		case gap == 0:
			out.Result = CheckInAlreadyDone
			return h, out
		case gap < 0:
			out.Result = CheckInStale
			return h, out
		case gap == 1:
			h.Streak++
			out.Result = CheckInContinued
		default:
			h.Streak = 1
			out.Result = CheckInRestarted
		}
	} else {
		h.Streak = 1
		out.Result = CheckInRestarted
	}

	d := today
	h.LastCompleted = &d
	if !h.Formed && h.Streak >= FormedStreak {
		h.Formed = true
		out.BecameFormed = true
	}
	out.StreakAfter = h.Streak
	return h, out
}

// BreakHabit is the explicit penalty path: the streak and last completion are
// cleared. Formed is kept.
func BreakHabit(h Habit) Habit {
	h.Streak = 0
	h.LastCompleted = nil
	return h
}

// StreakAlive reports whether the streak can still be continued today, i.e. the
// last check-in was today or yesterday.
func (h Habit) StreakAlive(today Date) bool {
	if h.LastCompleted == nil || h.Streak == 0 {
		return false
	}
	gap := h.LastCompleted.DaysUntil(today)
	return gap == 0 || gap == 1
}

func (h *Habit) normalize() {
	if h.Streak < 0 {
		h.Streak = 0
	}
	if h.Streak >= FormedStreak {
		h.Formed = true
	}
	if h.LastCompleted != nil && h.LastCompleted.IsZero() {
		h.LastCompleted = nil
	}
	h.Category = ParseCategory(string(h.Category))
}
