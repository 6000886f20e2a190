package engine

import (
	"fmt"
	"math"
)

const (
	// StarterMaxXP is the level 1 -> 2 threshold when no balance config overrides it.
	StarterMaxXP = 100

	// MinMaxXP is the smallest threshold that still grows when multiplied by 1.5.
	MinMaxXP = 2
)

type Attributes struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Vitality     int `json:"vitality"`
	Charisma     int `json:"charisma"`
}

// Get returns the counter for attr; AttributeNone reads as 0.
func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case AttributeStrength:
		return a.Strength
	case AttributeIntelligence:
		return a.Intelligence
	case AttributeWisdom:
		return a.Wisdom
	case AttributeVitality:
		return a.Vitality
	case AttributeCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// raise increments attr by one. AttributeNone is a no-op.
func (a *Attributes) raise(attr Attribute) {
	switch attr {
	case AttributeStrength:
		a.Strength++
	case AttributeIntelligence:
		a.Intelligence++
	case AttributeWisdom:
		a.Wisdom++
	case AttributeVitality:
		a.Vitality++
	case AttributeCharisma:
		a.Charisma++
	}
}

// Progression is the character sheet: level, xp toward MaxXP, gold and attributes.
type Progression struct {
	Level      int        `json:"level"`
	XP         int        `json:"xp"`
	MaxXP      int        `json:"maxXp"`
	Gold       int        `json:"gold"`
	Attributes Attributes `json:"attributes"`
}

// NewProgression returns the first-use character sheet. A starterMaxXP below
// MinMaxXP falls back to StarterMaxXP.
func NewProgression(starterMaxXP int) Progression {
	if starterMaxXP < MinMaxXP {
		starterMaxXP = StarterMaxXP
	}
	return Progression{Level: 1, MaxXP: starterMaxXP}
}

type AwardResult struct {
	Amount       int
	Category     Category
	LevelBefore  int
	LevelAfter   int
	LevelsGained int
	LevelUp      bool
	GoldDelta    int
	Attribute    Attribute // AttributeNone when the category raised nothing
}

// nextMaxXP is floor(maxXP * 1.5), saturating at math.MaxInt.
func nextMaxXP(maxXP int) int {
	growth := maxXP / 2
	if maxXP > math.MaxInt-growth {
		return math.MaxInt
	}
	return maxXP + growth
}

// satAdd adds without wrapping, pinning the result at math.MaxInt or math.MinInt.
func satAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// levelUp rolls xp overflow into as many levels as it pays for. Each level uses
// the threshold grown by the previous one.
func (p *Progression) levelUp() int {
	gained := 0
	for p.XP >= p.MaxXP {
		p.Level++
		p.XP -= p.MaxXP
		p.MaxXP = nextMaxXP(p.MaxXP)
		gained++
	}
	return gained
}

// AwardXP applies a signed xp award. Negative amounts are penalties: they cost the
// same amount of gold and drain xp down to 0 at most; levels are never lost.
func AwardXP(p Progression, amount int, category Category) (Progression, AwardResult) {
	res := AwardResult{
		Amount:      amount,
		Category:    category,
		LevelBefore: p.Level,
	}

	p.XP = satAdd(p.XP, amount)
	if p.XP < 0 {
		p.XP = 0
	}
	res.LevelsGained = p.levelUp()

	if amount < 0 {
		res.GoldDelta = amount
	} else {
		res.GoldDelta = amount / 2
	}
	p.Gold = satAdd(p.Gold, res.GoldDelta)

	res.Attribute = category.Attribute()
	p.Attributes.raise(res.Attribute)

	res.LevelAfter = p.Level
	res.LevelUp = res.LevelsGained > 0
	return p, res
}

// SpendGold deducts cost from the purse. It never lets a purchase overdraw: on
// rejection p is returned unchanged alongside the error.
func SpendGold(p Progression, cost int) (Progression, error) {
	if cost < 0 {
		return p, InvalidInputError{Field: "cost", Reason: "must not be negative"}
	}
	if p.Gold < cost {
		return p, InsufficientGoldError{Have: p.Gold, Cost: cost}
	}
	p.Gold -= cost
	return p, nil
}

// TotalXPForLevel returns the cumulative xp needed to reach level from level 1
// with the given starting threshold.
func TotalXPForLevel(level int, starterMaxXP int) int {
	total := 0
	maxXP := starterMaxXP
	for l := 1; l < level; l++ {
		total += maxXP
		maxXP = nextMaxXP(maxXP)
	}
	return total
}

// normalize repairs a sheet read from an untrusted snapshot so the ledger
// invariants hold again. Each repaired field is reported in problems. A stored
// xp at or past maxXp is reset rather than replayed into levels.
func (p *Progression) normalize(starterMaxXP int) (problems []string) {
	if p.Level < 1 {
		problems = append(problems, fmt.Sprintf("progression.level: %d below 1", p.Level))
		p.Level = 1
	}
	if p.MaxXP < MinMaxXP {
		problems = append(problems, fmt.Sprintf("progression.maxXp: %d below %d", p.MaxXP, MinMaxXP))
		p.MaxXP = NewProgression(starterMaxXP).MaxXP
	}
	if p.XP < 0 {
		problems = append(problems, fmt.Sprintf("progression.xp: %d below 0", p.XP))
		p.XP = 0
	}
	if p.XP >= p.MaxXP {
		problems = append(problems, fmt.Sprintf("progression.xp: %d not below maxXp %d", p.XP, p.MaxXP))
		p.XP = 0
	}

	for _, c := range []*int{&p.Attributes.Strength, &p.Attributes.Intelligence, &p.Attributes.Wisdom, &p.Attributes.Vitality, &p.Attributes.Charisma} {
		if *c < 0 {
			*c = 0
		}
	}
	return problems
}
