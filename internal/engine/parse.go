package engine

import "strings"

// ParseCategory parses user input to a Category.
// Unknown input is kept as-is: it is a valid tag that simply raises no attribute.
func ParseCategory(input string) Category {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "gym", "exercise", "sport":
		return CategoryFitness
	case "books", "read":
		return CategoryReading
	case "meditation":
		return CategoryMindfulness
	case "friends", "family":
		return CategorySocial
	case "chore", "housework":
		return CategoryChores
	default:
		return Category(s)
	}
}

// ParseDifficulty parses user input to a QuestDifficulty.
// If input is empty or unrecognized, returns DefaultDifficulty.
func ParseDifficulty(input string) QuestDifficulty {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "e", "easy":
		return DifficultyEasy
	case "m", "medium", "":
		return DifficultyMedium
	case "h", "hard":
		return DifficultyHard
	case "b", "boss", "raid", "boss-raid":
		return DifficultyBoss
	default:
		return DefaultDifficulty
	}
}
