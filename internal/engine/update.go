package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// minRefPrefix is the shortest ID prefix accepted as a reference.
const minRefPrefix = 4

// resolveHabit finds a habit by ID, unique ID prefix or case-insensitive name.
func resolveHabit(snap Snapshot, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if _, ok := snap.Habits[ref]; ok {
		return ref, nil
	}
	var matches []string
	for id, h := range snap.Habits {
		if strings.EqualFold(h.Name, ref) || (len(ref) >= minRefPrefix && strings.HasPrefix(id, ref)) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", NotFoundError{Kind: "habit", ID: ref}
	default:
		return "", InvalidInputError{Field: "habit", Reason: fmt.Sprintf("%q matches %d habits", ref, len(matches))}
	}
}

// resolveQuest finds a quest's index by ID, unique ID prefix or case-insensitive title.
func resolveQuest(snap Snapshot, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i := snap.questIndex(ref); i >= 0 {
		return i, nil
	}
	match := -1
	for i, q := range snap.Quests {
		if strings.EqualFold(q.Title, ref) || (len(ref) >= minRefPrefix && strings.HasPrefix(q.ID, ref)) {
			if match >= 0 {
				return -1, InvalidInputError{Field: "quest", Reason: fmt.Sprintf("%q matches more than one quest", ref)}
			}
			match = i
		}
	}
	if match < 0 {
		return -1, NotFoundError{Kind: "quest", ID: ref}
	}
	return match, nil
}

// BreakHabit is the explicit "I broke it" action: the streak is cleared,
// formed status is kept.
func (s *Service) BreakHabit(ctx context.Context, ref string) (*Habit, error) {
	var h Habit
	err := s.mutate(ctx, func(ss *session) error {
		id, err := resolveHabit(ss.snap, ref)
		if err != nil {
			return err
		}
		h = BreakHabit(ss.snap.Habits[id])
		ss.snap.Habits[id] = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("habit broken", zap.String("id", h.ID), zap.Bool("formed", h.Formed))
	return &h, nil
}

func (s *Service) RemoveHabit(ctx context.Context, ref string) (*Habit, error) {
	var h Habit
	err := s.mutate(ctx, func(ss *session) error {
		id, err := resolveHabit(ss.snap, ref)
		if err != nil {
			return err
		}
		h = ss.snap.Habits[id]
		delete(ss.snap.Habits, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("habit removed", zap.String("id", h.ID))
	return &h, nil
}

func (s *Service) RemoveQuest(ctx context.Context, ref string) (*Quest, error) {
	var q Quest
	err := s.mutate(ctx, func(ss *session) error {
		i, err := resolveQuest(ss.snap, ref)
		if err != nil {
			return err
		}
		q = ss.snap.Quests[i]
		ss.snap.Quests = append(ss.snap.Quests[:i], ss.snap.Quests[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("quest removed", zap.String("id", q.ID))
	return &q, nil
}

func (s *Service) RemoveClass(ctx context.Context, ref string) (*Class, error) {
	ref = strings.TrimSpace(ref)
	var c Class
	err := s.mutate(ctx, func(ss *session) error {
		for i, cl := range ss.snap.Timetable {
			if cl.ID == ref || strings.EqualFold(cl.Name, ref) || (len(ref) >= minRefPrefix && strings.HasPrefix(cl.ID, ref)) {
				c = cl
				ss.snap.Timetable = append(ss.snap.Timetable[:i], ss.snap.Timetable[i+1:]...)
				return nil
			}
		}
		return NotFoundError{Kind: "class", ID: ref}
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("class removed", zap.String("id", c.ID))
	return &c, nil
}
