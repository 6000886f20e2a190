package engine

import "fmt"

// InsufficientGoldError is returned when a purchase costs more than the purse holds.
// The character sheet is left untouched.
type InsufficientGoldError struct {
	Have int
	Cost int
}

func (e InsufficientGoldError) Error() string {
	return fmt.Sprintf("insufficient gold: have %d, need %d", e.Have, e.Cost)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
