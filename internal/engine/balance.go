package engine

// Balance holds the tunable reward amounts.
type Balance struct {
	StarterMaxXP    int
	HabitCheckInXP  int
	HydrationGoal   int
	HydrationGoalXP int
	QuestXP         QuestXP
}

func DefaultBalance() Balance {
	return Balance{
		StarterMaxXP:    StarterMaxXP,
		HabitCheckInXP:  10,
		HydrationGoal:   DefaultHydrationGoal,
		HydrationGoalXP: 5,
		QuestXP:         DefaultQuestXP(),
	}
}
