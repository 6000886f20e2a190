package engine

// DefaultHydrationGoal is the daily glasses-of-water target.
const DefaultHydrationGoal = 8

type Hydration struct {
	Date    Date `json:"date"`
	Glasses int  `json:"glasses"`
	Goal    int  `json:"goal"`
	Paid    bool `json:"goalRewarded"`
}

type HydrationResult struct {
	Glasses     int
	Goal        int
	GoalReached bool // true only on the first update that reaches the goal today
}

// UpdateHydration adds delta glasses for today. The counter starts over on a
// new calendar day and never drops below zero.
func UpdateHydration(h Hydration, today Date, delta int) (Hydration, HydrationResult) {
	if h.Goal <= 0 {
		h.Goal = DefaultHydrationGoal
	}
	if !h.Date.SameDay(today) {
		h.Date = today
		h.Glasses = 0
		h.Paid = false
	}

	h.Glasses += delta
	if h.Glasses < 0 {
		h.Glasses = 0
	}

	res := HydrationResult{Glasses: h.Glasses, Goal: h.Goal}
	if !h.Paid && h.Glasses >= h.Goal {
		h.Paid = true
		res.GoalReached = true
	}
	return h, res
}
