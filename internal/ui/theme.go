package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lifequest/internal/engine"
)

// LifeQuest theme (CLI + TUI).

const (
	IconQuest   = "🗺️"
	IconBoss    = "🐲"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconFire    = "🔥"
	IconSeed    = "🌱"
	IconCoin    = "🪙"
	IconWater   = "💧"
	IconClock   = "🕘"
	IconScroll  = "📜"
	IconRobot   = "🤖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeFormed  = lipgloss.NewStyle().Bold(true).Foreground(cGood).Render("FORMED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankText renders a rank's icon and title in the rank's colour.
func RankText(r engine.Rank) string {
	return r.Icon + " " + lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.Color)).Render(r.Title())
}

func StageText(stage engine.HabitStage) string {
	switch stage {
	case engine.HabitFormed:
		return Good.Render("formed")
	case engine.HabitActive:
		return H2.Render("active")
	default:
		return Muted.Render("fresh")
	}
}

func HabitIcon(h engine.Habit, today engine.Date) string {
	switch {
	case h.Formed:
		return IconTrophy
	case h.StreakAlive(today):
		return IconFire
	default:
		return IconSeed
	}
}

func QuestIcon(q engine.Quest) string {
	switch {
	case q.Done:
		return IconDone
	case q.IsBossRaid():
		return IconBoss
	default:
		return IconQuest
	}
}

func GoldText(n int) string {
	return Gold.Render(fmt.Sprintf("%s %d", IconCoin, n))
}

// Signed renders a delta with its sign, green when positive and red when negative.
func Signed(n int, unit string) string {
	s := fmt.Sprintf("%+d %s", n, unit)
	switch {
	case n > 0:
		return Good.Render(s)
	case n < 0:
		return Bad.Render(s)
	default:
		return Muted.Render(s)
	}
}

// Bar is a plain-text progress bar for CLI output.
func Bar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
