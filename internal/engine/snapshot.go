package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// SnapshotVersion is bumped when the persisted layout changes shape.
const SnapshotVersion = 1

// Snapshot is everything persisted for the one player, written as a single
// JSON document after each mutation.
type Snapshot struct {
	Version     int              `json:"version"`
	Progression Progression      `json:"progression"`
	Habits      map[string]Habit `json:"habits"`
	Quests      []Quest          `json:"quests"`
	Hydration   Hydration        `json:"hydration"`
	Timetable   []Class          `json:"timetable"`
}

func NewSnapshot(b Balance) Snapshot {
	return Snapshot{
		Version:     SnapshotVersion,
		Progression: NewProgression(b.StarterMaxXP),
		Habits:      map[string]Habit{},
		Hydration:   Hydration{Goal: hydrationGoal(b)},
	}
}

func hydrationGoal(b Balance) int {
	if b.HydrationGoal > 0 {
		return b.HydrationGoal
	}
	return DefaultHydrationGoal
}

// SortedHabits returns the habits ordered by creation date, then name.
func (s Snapshot) SortedHabits() []Habit {
	out := make([]Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedOn.SameDay(out[j].CreatedOn) {
			return out[i].CreatedOn.Before(out[j].CreatedOn)
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s Snapshot) questIndex(id string) int {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.Version = SnapshotVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot encode: %w", err)
	}
	return data, nil
}

// DecodeSnapshot reads a persisted snapshot. It never fails: any field that is
// missing or cannot be decoded keeps its default, and a description of each
// such field is returned in problems.
func DecodeSnapshot(data []byte, b Balance) (s Snapshot, problems []string) {
	s = NewSnapshot(b)
	if len(data) == 0 {
		return s, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return s, []string{fmt.Sprintf("snapshot: %v", err)}
	}

	decodeField(top, "version", &s.Version, "version", &problems)
	if raw, ok := top["progression"]; ok {
		s.Progression = decodeProgression(raw, b, &problems)
	}
	if raw, ok := top["habits"]; ok {
		s.Habits = decodeHabits(raw, &problems)
	}
	if raw, ok := top["quests"]; ok {
		s.Quests = decodeList(raw, "quests", &problems, func(q *Quest) {
			if q.ID == "" {
				q.ID = uuid.NewString()
			}
			q.normalize()
		})
	}
	decodeField(top, "hydration", &s.Hydration, "hydration", &problems)
	if s.Hydration.Goal <= 0 {
		s.Hydration.Goal = hydrationGoal(b)
	}
	if raw, ok := top["timetable"]; ok {
		s.Timetable = decodeList(raw, "timetable", &problems, func(c *Class) {
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			if c.Weeks == "" {
				c.Weeks = WeeksAll
			}
		})
	}
	s.Version = SnapshotVersion
	return s, problems
}

// decodeField overwrites *dst only when fields[key] decodes cleanly.
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T, path string, problems *[]string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %v", path, err))
		return
	}
	*dst = v
}

func decodeObject(raw json.RawMessage, path string, problems *[]string) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %v", path, err))
		return nil, false
	}
	return fields, true
}

func decodeProgression(raw json.RawMessage, b Balance, problems *[]string) Progression {
	p := NewProgression(b.StarterMaxXP)
	fields, ok := decodeObject(raw, "progression", problems)
	if !ok {
		return p
	}
	decodeField(fields, "level", &p.Level, "progression.level", problems)
	decodeField(fields, "xp", &p.XP, "progression.xp", problems)
	decodeField(fields, "maxXp", &p.MaxXP, "progression.maxXp", problems)
	decodeField(fields, "gold", &p.Gold, "progression.gold", problems)
	if rawAttrs, ok := fields["attributes"]; ok {
		if attrs, ok := decodeObject(rawAttrs, "progression.attributes", problems); ok {
			decodeField(attrs, "strength", &p.Attributes.Strength, "progression.attributes.strength", problems)
			decodeField(attrs, "intelligence", &p.Attributes.Intelligence, "progression.attributes.intelligence", problems)
			decodeField(attrs, "wisdom", &p.Attributes.Wisdom, "progression.attributes.wisdom", problems)
			decodeField(attrs, "vitality", &p.Attributes.Vitality, "progression.attributes.vitality", problems)
			decodeField(attrs, "charisma", &p.Attributes.Charisma, "progression.attributes.charisma", problems)
		}
	}
	*problems = append(*problems, p.normalize(b.StarterMaxXP)...)
	return p
}

func decodeHabits(raw json.RawMessage, problems *[]string) map[string]Habit {
	out := map[string]Habit{}
	entries, ok := decodeObject(raw, "habits", problems)
	if !ok {
		return out
	}
	for id, rawHabit := range entries {
		path := "habits." + id
		fields, ok := decodeObject(rawHabit, path, problems)
		if !ok {
			continue
		}
		h := Habit{ID: id}
		decodeField(fields, "name", &h.Name, path+".name", problems)
		decodeField(fields, "category", &h.Category, path+".category", problems)
		decodeField(fields, "streakCount", &h.Streak, path+".streakCount", problems)
		decodeField(fields, "lastCompletedDate", &h.LastCompleted, path+".lastCompletedDate", problems)
		decodeField(fields, "formed", &h.Formed, path+".formed", problems)
		decodeField(fields, "createdOn", &h.CreatedOn, path+".createdOn", problems)
		decodeField(fields, "blueprint", &h.Blueprint, path+".blueprint", problems)
		h.ID = id
		h.normalize()
		out[id] = h
	}
	return out
}

// decodeList keeps every element of a JSON array that decodes, dropping the rest.
func decodeList[T any](raw json.RawMessage, path string, problems *[]string, fix func(*T)) []T {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %v", path, err))
		return nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			*problems = append(*problems, fmt.Sprintf("%s[%d]: %v", path, i, err))
			continue
		}
		fix(&v)
		out = append(out, v)
	}
	return out
}
