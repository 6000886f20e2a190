package engine

type Attribute string

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "strength"
	AttributeIntelligence Attribute = "intelligence"
	AttributeWisdom       Attribute = "wisdom"
	AttributeVitality     Attribute = "vitality"
	AttributeCharisma     Attribute = "charisma"
)

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeIntelligence, AttributeWisdom, AttributeVitality, AttributeCharisma:
		return true
	default:
		return false
	}
}

// Category tags a reward. It only decides which attribute (if any) is raised.
type Category string

const (
	CategoryNone        Category = ""
	CategoryFitness     Category = "fitness"
	CategoryStudy       Category = "study"
	CategorySchool      Category = "school"
	CategoryHomework    Category = "homework"
	CategoryReading     Category = "reading"
	CategoryWork        Category = "work"
	CategoryMindfulness Category = "mindfulness"
	CategoryHealth      Category = "health"
	CategorySocial      Category = "social"
	CategoryChores      Category = "chores"
)

var categoryAttributes = map[Category]Attribute{
	CategoryFitness:     AttributeStrength,
	CategoryStudy:       AttributeIntelligence,
	CategorySchool:      AttributeIntelligence,
	CategoryHomework:    AttributeIntelligence,
	CategoryReading:     AttributeIntelligence,
	CategoryWork:        AttributeIntelligence,
	CategoryMindfulness: AttributeWisdom,
	CategoryHealth:      AttributeVitality,
	CategorySocial:      AttributeCharisma,
	CategoryChores:      AttributeCharisma,
}

// Attribute returns the attribute raised by a reward in this category, or
// AttributeNone when the category has no mapping.
func (c Category) Attribute() Attribute {
	if a, ok := categoryAttributes[c]; ok {
		return a
	}
	return AttributeNone
}

func (c Category) IsKnown() bool {
	_, ok := categoryAttributes[c]
	return ok
}

type QuestDifficulty string

const (
	DifficultyEasy   QuestDifficulty = "easy"
	DifficultyMedium QuestDifficulty = "medium"
	DifficultyHard   QuestDifficulty = "hard"
	DifficultyBoss   QuestDifficulty = "boss"
)

func (d QuestDifficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyBoss:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty QuestDifficulty = DifficultyMedium

// RewardSource records where an award came from in the reward log.
type RewardSource string

const (
	SourceManual    RewardSource = "manual"
	SourceHabit     RewardSource = "habit"
	SourceQuest     RewardSource = "quest"
	SourceHydration RewardSource = "hydration"
	SourceAI        RewardSource = "ai"
	SourcePenalty   RewardSource = "penalty"
)
