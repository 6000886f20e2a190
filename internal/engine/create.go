package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) AddHabit(ctx context.Context, name string, cat Category) (*Habit, error) {
	title, err := normalizeTitle(name)
	if err != nil {
		return nil, err
	}

	var h Habit
	err = s.mutate(ctx, func(ss *session) error {
		h = Habit{
			ID:        uuid.NewString(),
			Name:      title,
			Category:  cat,
			CreatedOn: ss.today,
		}
		ss.snap.Habits[h.ID] = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("habit added", zap.String("id", h.ID), zap.String("name", h.Name))
	return &h, nil
}

type QuestInput struct {
	Title      string
	Category   Category
	Difficulty QuestDifficulty
	Due        *Date
}

// AddQuest creates an open quest. Its xp reward is frozen now from the balance
// table. Boss raids must carry a deadline.
func (s *Service) AddQuest(ctx context.Context, in QuestInput) (*Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	diff := in.Difficulty
	if !diff.IsValid() {
		diff = DefaultDifficulty
	}
	if diff == DifficultyBoss && in.Due == nil {
		return nil, InvalidInputError{Field: "due", Reason: "a boss raid needs a deadline"}
	}

	var q Quest
	err = s.mutate(ctx, func(ss *session) error {
		if in.Due != nil && in.Due.Before(ss.today) {
			return InvalidInputError{Field: "due", Reason: "is in the past"}
		}
		q = Quest{
			ID:         uuid.NewString(),
			Title:      title,
			Category:   in.Category,
			Difficulty: diff,
			XP:         s.balance.QuestXP.For(diff),
			Due:        in.Due,
		}
		ss.snap.Quests = append(ss.snap.Quests, q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("quest added", zap.String("id", q.ID), zap.String("difficulty", string(q.Difficulty)), zap.Int("xp", q.XP))
	return &q, nil
}

type ClassInput struct {
	Name    string
	Weekday string
	Start   string
	Room    string
	Weeks   string
}

func (s *Service) AddClass(ctx context.Context, in ClassInput) (*Class, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return nil, err
	}
	day, err := ParseWeekday(in.Weekday)
	if err != nil {
		return nil, err
	}
	start, err := ParseClock(in.Start)
	if err != nil {
		return nil, err
	}
	weeks, err := ParseWeekParity(in.Weeks)
	if err != nil {
		return nil, err
	}

	c := Class{
		ID:      uuid.NewString(),
		Name:    name,
		Weekday: day,
		Start:   start,
		Room:    in.Room,
		Weeks:   weeks,
	}
	err = s.mutate(ctx, func(ss *session) error {
		ss.snap.Timetable = append(ss.snap.Timetable, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("class added", zap.String("id", c.ID), zap.String("name", c.Name))
	return &c, nil
}
