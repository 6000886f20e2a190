package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type CheckInView struct {
	Habit   Habit
	Outcome CheckInOutcome
	Award   *AwardResult // nil when the check-in did not count
}

// CheckInHabit records today's completion of a habit and, when it counts, awards
// the fixed habit xp in the habit's category.
func (s *Service) CheckInHabit(ctx context.Context, ref string) (*CheckInView, error) {
	var view CheckInView
	err := s.mutate(ctx, func(ss *session) error {
		id, err := resolveHabit(ss.snap, ref)
		if err != nil {
			return err
		}
		h, out := CheckIn(ss.snap.Habits[id], ss.today)
		ss.snap.Habits[id] = h
		view = CheckInView{Habit: h, Outcome: out}

		if out.Rewarded() {
			res := ss.award(s.balance.HabitCheckInXP, h.Category, SourceHabit, "habit: "+h.Name)
			view.Award = &res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("habit check-in",
		zap.String("id", view.Habit.ID),
		zap.String("result", string(view.Outcome.Result)),
		zap.Int("streak", view.Habit.Streak),
		zap.Bool("formed", view.Habit.Formed))
	return &view, nil
}

type QuestView struct {
	Quest Quest
	Award AwardResult
}

func (s *Service) CompleteQuest(ctx context.Context, ref string) (*QuestView, error) {
	var view QuestView
	err := s.mutate(ctx, func(ss *session) error {
		i, err := resolveQuest(ss.snap, ref)
		if err != nil {
			return err
		}
		q := ss.snap.Quests[i]
		if q.Done {
			return InvalidInputError{Field: "quest", Reason: fmt.Sprintf("%q is already done", q.Title)}
		}
		d := ss.today
		q.Done = true
		q.CompletedOn = &d
		ss.snap.Quests[i] = q

		view = QuestView{
			Quest: q,
			Award: ss.award(q.XP, q.Category, SourceQuest, "quest: "+q.Title),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("quest completed", zap.String("id", view.Quest.ID), zap.Int("xp", view.Quest.XP), zap.Int("level", view.Award.LevelAfter))
	return &view, nil
}

type RaidFailure struct {
	Quest   Quest
	Penalty AwardResult
}

// FailOverdueRaids closes every boss raid whose deadline has passed undone and
// applies its penalty.
func (s *Service) FailOverdueRaids(ctx context.Context) ([]RaidFailure, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	pending := false
	for _, q := range snap.Quests {
		if q.IsBossRaid() && q.Overdue(today) {
			pending = true
			break
		}
	}
	if !pending {
		return nil, nil
	}

	var failed []RaidFailure
	err = s.mutate(ctx, func(ss *session) error {
		failed = failed[:0]
		for i, q := range ss.snap.Quests {
			if !q.IsBossRaid() || !q.Overdue(ss.today) {
				continue
			}
			q.Done = true
			q.Failed = true
			ss.snap.Quests[i] = q
			res := ss.award(RaidPenalty(q), q.Category, SourcePenalty, "failed raid: "+q.Title)
			failed = append(failed, RaidFailure{Quest: q, Penalty: res})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, f := range failed {
		s.log.Info("boss raid failed", zap.String("id", f.Quest.ID), zap.Int("penalty", f.Penalty.Amount))
	}
	return failed, nil
}

type HydrationView struct {
	Result HydrationResult
	Award  *AwardResult
}

// UpdateHydration adds (or with a negative delta removes) glasses of water for
// today. Reaching the daily goal pays out once per day.
func (s *Service) UpdateHydration(ctx context.Context, delta int) (*HydrationView, error) {
	var view HydrationView
	err := s.mutate(ctx, func(ss *session) error {
		h, res := UpdateHydration(ss.snap.Hydration, ss.today, delta)
		ss.snap.Hydration = h
		view.Result = res
		if res.GoalReached && s.balance.HydrationGoalXP > 0 {
			award := ss.award(s.balance.HydrationGoalXP, CategoryHealth, SourceHydration, "hydration goal")
			view.Award = &award
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("hydration updated", zap.Int("glasses", view.Result.Glasses), zap.Bool("goal_reached", view.Result.GoalReached))
	return &view, nil
}
