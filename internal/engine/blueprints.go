package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BlueprintStatus string

const (
	BlueprintLocked    BlueprintStatus = "locked"
	BlueprintAvailable BlueprintStatus = "available"
	BlueprintActive    BlueprintStatus = "active"
	BlueprintCompleted BlueprintStatus = "completed"
)

type BlueprintKind string

const (
	BlueprintKindQuest BlueprintKind = "quest"
	BlueprintKindHabit BlueprintKind = "habit"
)

// BlueprintDef is a ready-made quest or habit that unlocks as the character grows.
type BlueprintDef struct {
	Code string
	Kind BlueprintKind

	Title      string
	Category   Category
	Difficulty QuestDifficulty
	DueInDays  int // quests only; boss raids need one
	Hint       string

	Unlock func(snap Snapshot) bool
}

func builtinBlueprints() []BlueprintDef {
	return []BlueprintDef{
		{
			Code:     "morning_pushups",
			Kind:     BlueprintKindHabit,
			Title:    "Morning push-ups",
			Category: CategoryFitness,
			Hint:     "always available",
			Unlock:   func(Snapshot) bool { return true },
		},
		{
			Code:     "daily_reading",
			Kind:     BlueprintKindHabit,
			Title:    "Read 20 pages",
			Category: CategoryReading,
			Hint:     "reach level 3",
			Unlock:   func(s Snapshot) bool { return s.Progression.Level >= 3 },
		},
		{
			Code:       "deep_clean",
			Kind:       BlueprintKindQuest,
			Title:      "Deep clean the room",
			Category:   CategoryChores,
			Difficulty: DifficultyMedium,
			Hint:       "reach level 3",
			Unlock:     func(s Snapshot) bool { return s.Progression.Level >= 3 },
		},
		{
			Code:       "book_review",
			Kind:       BlueprintKindQuest,
			Title:      "Write a short book review",
			Category:   CategoryReading,
			Difficulty: DifficultyHard,
			Hint:       "reach 5 intelligence",
			Unlock:     func(s Snapshot) bool { return s.Progression.Attributes.Intelligence >= 5 },
		},
		{
			Code:     "meditation_week",
			Kind:     BlueprintKindHabit,
			Title:    "Meditate 10 minutes",
			Category: CategoryMindfulness,
			Hint:     "form any habit",
			Unlock:   func(s Snapshot) bool { return anyHabit(s, func(h Habit) bool { return h.Formed }) },
		},
		{
			Code:       "half_marathon",
			Kind:       BlueprintKindQuest,
			Title:      "Run a half marathon",
			Category:   CategoryFitness,
			Difficulty: DifficultyBoss,
			DueInDays:  30,
			Hint:       "reach level 10 and 10 strength",
			Unlock: func(s Snapshot) bool {
				return s.Progression.Level >= 10 && s.Progression.Attributes.Strength >= 10
			},
		},
	}
}

func anyHabit(s Snapshot, pred func(Habit) bool) bool {
	for _, h := range s.Habits {
		if pred(h) {
			return true
		}
	}
	return false
}

func findBlueprint(code string) (BlueprintDef, bool) {
	c := strings.TrimSpace(strings.ToLower(code))
	for _, def := range builtinBlueprints() {
		if def.Code == c {
			return def, true
		}
	}
	return BlueprintDef{}, false
}

// blueprintStatus derives a blueprint's status from the snapshot: a habit or
// open quest created from it makes it active, a won quest completes it.
func blueprintStatus(def BlueprintDef, snap Snapshot) BlueprintStatus {
	for _, h := range snap.Habits {
		if h.Blueprint == def.Code {
			return BlueprintActive
		}
	}
	completed := false
	for _, q := range snap.Quests {
		if q.Blueprint != def.Code {
			continue
		}
		if !q.Done {
			return BlueprintActive
		}
		if !q.Failed {
			completed = true
		}
	}
	switch {
	case completed:
		return BlueprintCompleted
	case def.Unlock(snap):
		return BlueprintAvailable
	default:
		return BlueprintLocked
	}
}

type BlueprintView struct {
	Def    BlueprintDef
	Status BlueprintStatus
}

func (s *Service) Blueprints(ctx context.Context) ([]BlueprintView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defs := builtinBlueprints()
	out := make([]BlueprintView, len(defs))
	for i, def := range defs {
		out[i] = BlueprintView{Def: def, Status: blueprintStatus(def, snap)}
	}
	return out, nil
}

type AcceptResult struct {
	Def   BlueprintDef
	Habit *Habit
	Quest *Quest
}

// AcceptBlueprint instantiates an available blueprint as a habit or quest.
func (s *Service) AcceptBlueprint(ctx context.Context, code string) (*AcceptResult, error) {
	def, ok := findBlueprint(code)
	if !ok {
		return nil, NotFoundError{Kind: "blueprint", ID: code}
	}

	res := AcceptResult{Def: def}
	err := s.mutate(ctx, func(ss *session) error {
		if st := blueprintStatus(def, ss.snap); st != BlueprintAvailable {
			return InvalidInputError{Field: "blueprint", Reason: def.Code + " is " + string(st)}
		}
		switch def.Kind {
		case BlueprintKindHabit:
			h := Habit{
				ID:        uuid.NewString(),
				Name:      def.Title,
				Category:  def.Category,
				CreatedOn: ss.today,
				Blueprint: def.Code,
			}
			ss.snap.Habits[h.ID] = h
			res.Habit = &h
		default:
			q := Quest{
				ID:         uuid.NewString(),
				Title:      def.Title,
				Category:   def.Category,
				Difficulty: def.Difficulty,
				XP:         s.balance.QuestXP.For(def.Difficulty),
				Blueprint:  def.Code,
			}
			if def.DueInDays > 0 {
				due := ss.today.AddDays(def.DueInDays)
				q.Due = &due
			}
			ss.snap.Quests = append(ss.snap.Quests, q)
			res.Quest = &q
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("blueprint accepted", zap.String("code", def.Code), zap.String("kind", string(def.Kind)))
	return &res, nil
}
