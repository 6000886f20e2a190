package engine

import "strings"

type Quest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    Category        `json:"category"`
	Difficulty  QuestDifficulty `json:"difficulty"`
	XP          int             `json:"xp"`
	Due         *Date           `json:"due,omitempty"`
	Done        bool            `json:"done"`
	Failed      bool            `json:"failed,omitempty"`
	CompletedOn *Date           `json:"completedOn,omitempty"`
	Blueprint   string          `json:"blueprint,omitempty"`
}

// IsBossRaid reports whether q is a high-value, deadline-bound quest.
func (q Quest) IsBossRaid() bool {
	return q.Difficulty == DifficultyBoss
}

// Overdue reports whether an open quest's deadline has passed.
func (q Quest) Overdue(today Date) bool {
	return !q.Done && q.Due != nil && q.Due.Before(today)
}

// QuestXP holds the xp frozen into a quest at creation, per difficulty.
type QuestXP map[QuestDifficulty]int

func DefaultQuestXP() QuestXP {
	return QuestXP{
		DifficultyEasy:   10,
		DifficultyMedium: 25,
		DifficultyHard:   50,
		DifficultyBoss:   150,
	}
}

func (t QuestXP) For(d QuestDifficulty) int {
	if xp, ok := t[d]; ok && xp > 0 {
		return xp
	}
	return DefaultQuestXP()[d]
}

// RaidPenalty is the xp lost when a boss raid's deadline passes undone.
func RaidPenalty(q Quest) int {
	p := q.XP / 5
	if p < 1 {
		p = 1
	}
	return -p
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", InvalidInputError{Field: "title", Reason: "is required"}
	}
	return t, nil
}

func (q *Quest) normalize() {
	if !q.Difficulty.IsValid() {
		q.Difficulty = DefaultDifficulty
	}
	if q.XP < 0 {
		q.XP = 0
	}
	q.Category = ParseCategory(string(q.Category))
}
