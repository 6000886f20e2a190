package bridge

import (
	"context"
	"fmt"
	"strings"

	"lifequest/internal/engine"
)

var categoryEnum = []string{
	string(engine.CategoryFitness), string(engine.CategoryStudy), string(engine.CategorySchool),
	string(engine.CategoryHomework), string(engine.CategoryReading), string(engine.CategoryWork),
	string(engine.CategoryMindfulness), string(engine.CategoryHealth), string(engine.CategorySocial),
	string(engine.CategoryChores),
}

func (b *Bridge) catalogue() []Action {
	return []Action{
		{
			Name:        "add_quest",
			Description: "Add a new quest (task) to the quest log.",
			Params: []Param{
				{Name: "title", Type: ParamString, Description: "Short quest title", Required: true},
				{Name: "category", Type: ParamString, Description: "Life area of the quest", Enum: categoryEnum},
				{Name: "difficulty", Type: ParamString, Description: "Quest difficulty", Enum: []string{"easy", "medium", "hard", "boss"}},
				{Name: "due", Type: ParamString, Description: "Deadline as YYYY-MM-DD (required for boss)"},
			},
			handle: b.addQuest,
		},
		{
			Name:        "complete_quest",
			Description: "Mark a quest as complete and award its XP.",
			Params: []Param{
				{Name: "quest", Type: ParamString, Description: "Quest ID or exact title", Required: true},
			},
			handle: b.completeQuest,
		},
		{
			Name:        "award_xp",
			Description: "Award (or with a negative amount, deduct) XP for an effort the user described.",
			Params: []Param{
				{Name: "amount", Type: ParamInteger, Description: "XP amount", Required: true},
				{Name: "category", Type: ParamString, Description: "Life area", Enum: categoryEnum},
				{Name: "reason", Type: ParamString, Description: "Why the XP is awarded"},
			},
			handle: b.awardXP,
		},
		{
			Name:        "add_habit",
			Description: "Start tracking a new daily habit.",
			Params: []Param{
				{Name: "name", Type: ParamString, Description: "Habit name", Required: true},
				{Name: "category", Type: ParamString, Description: "Life area", Enum: categoryEnum},
			},
			handle: b.addHabit,
		},
		{
			Name:        "check_in_habit",
			Description: "Record that the user did a habit today.",
			Params: []Param{
				{Name: "habit", Type: ParamString, Description: "Habit ID or exact name", Required: true},
			},
			handle: b.checkInHabit,
		},
		{
			Name:        "break_habit",
			Description: "Record that the user broke a habit; resets its streak.",
			Params: []Param{
				{Name: "habit", Type: ParamString, Description: "Habit ID or exact name", Required: true},
			},
			handle: b.breakHabit,
		},
		{
			Name:        "update_hydration",
			Description: "Add (or remove, if negative) glasses of water drunk today.",
			Params: []Param{
				{Name: "glasses", Type: ParamInteger, Description: "Number of glasses", Required: true},
			},
			handle: b.updateHydration,
		},
		{
			Name:        "spend_gold",
			Description: "Spend gold on a reward the user buys for themselves.",
			Params: []Param{
				{Name: "cost", Type: ParamInteger, Description: "Gold cost", Required: true},
				{Name: "item", Type: ParamString, Description: "What is bought"},
			},
			handle: b.spendGold,
		},
	}
}

func (b *Bridge) addQuest(ctx context.Context, args Args) (string, error) {
	title, err := args.requireString("title")
	if err != nil {
		return "", err
	}
	in := engine.QuestInput{
		Title:      title,
		Category:   engine.ParseCategory(args.String("category")),
		Difficulty: engine.ParseDifficulty(args.String("difficulty")),
	}
	if due := args.String("due"); due != "" {
		d, err := engine.ParseDate(due)
		if err != nil {
			return "", err
		}
		in.Due = &d
	}
	q, err := b.svc.AddQuest(ctx, in)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("added %s quest %q (+%d XP)", q.Difficulty, q.Title, q.XP), nil
}

func (b *Bridge) completeQuest(ctx context.Context, args Args) (string, error) {
	ref, err := args.requireString("quest")
	if err != nil {
		return "", err
	}
	res, err := b.svc.CompleteQuest(ctx, ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("completed %q: +%d XP%s", res.Quest.Title, res.Quest.XP, levelNote(res.Award)), nil
}

func (b *Bridge) awardXP(ctx context.Context, args Args) (string, error) {
	amount, err := args.requireInt("amount")
	if err != nil {
		return "", err
	}
	res, err := b.svc.AwardXP(ctx, engine.AwardInput{
		Amount:   amount,
		Category: engine.ParseCategory(args.String("category")),
		Reason:   args.String("reason"),
		Source:   engine.SourceAI,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%+d XP, %+d gold%s", amount, res.GoldDelta, levelNote(*res)), nil
}

func (b *Bridge) addHabit(ctx context.Context, args Args) (string, error) {
	name, err := args.requireString("name")
	if err != nil {
		return "", err
	}
	h, err := b.svc.AddHabit(ctx, name, engine.ParseCategory(args.String("category")))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tracking habit %q", h.Name), nil
}

func (b *Bridge) checkInHabit(ctx context.Context, args Args) (string, error) {
	ref, err := args.requireString("habit")
	if err != nil {
		return "", err
	}
	v, err := b.svc.CheckInHabit(ctx, ref)
	if err != nil {
		return "", err
	}
	if !v.Outcome.Rewarded() {
		return fmt.Sprintf("%q already checked in today", v.Habit.Name), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q streak %d", v.Habit.Name, v.Habit.Streak)
	if v.Outcome.BecameFormed {
		sb.WriteString(", habit formed")
	}
	return sb.String(), nil
}

func (b *Bridge) breakHabit(ctx context.Context, args Args) (string, error) {
	ref, err := args.requireString("habit")
	if err != nil {
		return "", err
	}
	h, err := b.svc.BreakHabit(ctx, ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q streak reset", h.Name), nil
}

func (b *Bridge) updateHydration(ctx context.Context, args Args) (string, error) {
	n, err := args.requireInt("glasses")
	if err != nil {
		return "", err
	}
	v, err := b.svc.UpdateHydration(ctx, n)
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf("%d/%d glasses today", v.Result.Glasses, v.Result.Goal)
	if v.Award != nil {
		msg += fmt.Sprintf(", goal reached (+%d XP)", v.Award.Amount)
	}
	return msg, nil
}

func (b *Bridge) spendGold(ctx context.Context, args Args) (string, error) {
	cost, err := args.requireInt("cost")
	if err != nil {
		return "", err
	}
	item := args.String("item")
	res, err := b.svc.SpendGold(ctx, cost, item)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("spent %d gold on %s, %d left", cost, orDefault(item, "a reward"), res.GoldAfter), nil
}

func levelNote(res engine.AwardResult) string {
	if !res.LevelUp {
		return ""
	}
	return fmt.Sprintf(", level up to %d", res.LevelAfter)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
