package engine

import (
	"context"
	"sort"
)

func (s *Service) ListHabits(ctx context.Context) ([]Habit, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SortedHabits(), nil
}

// ListQuests returns open quests first (soonest deadline first), then finished
// ones when includeDone is set.
func (s *Service) ListQuests(ctx context.Context, includeDone bool) ([]Quest, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var out []Quest
	for _, q := range snap.Quests {
		if q.Done && !includeDone {
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Done != b.Done {
			return !a.Done
		}
		switch {
		case a.Due == nil && b.Due == nil:
			return false
		case a.Due == nil:
			return false
		case b.Due == nil:
			return true
		default:
			return a.Due.Before(*b.Due)
		}
	})
	return out, nil
}

// ListClasses returns the timetable ordered by weekday (Monday first) and start time.
func (s *Service) ListClasses(ctx context.Context) ([]Class, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]Class(nil), snap.Timetable...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := (out[i].Weekday+6)%7, (out[j].Weekday+6)%7
		if di != dj {
			return di < dj
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}
