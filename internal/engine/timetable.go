package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekParity selects which ISO weeks a class meets in.
type WeekParity string

const (
	WeeksAll  WeekParity = "all"
	WeeksEven WeekParity = "even"
	WeeksOdd  WeekParity = "odd"
)

func ParseWeekParity(input string) (WeekParity, error) {
	switch s := WeekParity(strings.TrimSpace(strings.ToLower(input))); s {
	case "", WeeksAll:
		return WeeksAll, nil
	case WeeksEven, WeeksOdd:
		return s, nil
	default:
		return "", InvalidInputError{Field: "weeks", Reason: fmt.Sprintf("%q is not one of all|even|odd", input)}
	}
}

func (w WeekParity) Matches(d Date) bool {
	_, week := d.ISOWeek()
	switch w {
	case WeeksEven:
		return week%2 == 0
	case WeeksOdd:
		return week%2 == 1
	default:
		return true
	}
}

type Class struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Weekday time.Weekday `json:"weekday"`
	Start   string       `json:"start"`
	Room    string       `json:"room,omitempty"`
	Weeks   WeekParity   `json:"weeks"`
}

func ParseWeekday(input string) (time.Weekday, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, InvalidInputError{Field: "weekday", Reason: fmt.Sprintf("%q is not a weekday", input)}
}

// ParseClock validates an "HH:MM" start time and returns it zero-padded.
func ParseClock(input string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(input))
	if err != nil {
		return "", InvalidInputError{Field: "start", Reason: fmt.Sprintf("%q is not HH:MM", input)}
	}
	return t.Format("15:04"), nil
}

// ClassesOn returns the classes meeting on d, earliest first.
func ClassesOn(classes []Class, d Date) []Class {
	var out []Class
	for _, c := range classes {
		if c.Weekday == d.Weekday() && c.Weeks.Matches(d) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
