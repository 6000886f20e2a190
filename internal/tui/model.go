package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	status *engine.Status
	items  []boardItem

	xpBar    progress.Model
	rankBar  progress.Model
	selected int

	lastLog string
	loading bool
	err     error
}

// boardItem is one selectable row: a habit or an open quest.
type boardItem struct {
	habit *engine.Habit
	quest *engine.Quest
}

type loadedMsg struct {
	status *engine.Status
	err    error
}

type actionMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		rankBar: progress.New(progress.WithSolidFill("220"), progress.WithWidth(30)),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx)
		return loadedMsg{status: st, err: err}
	}
}

func (m boardModel) checkInCmd(h engine.Habit) tea.Cmd {
	return func() tea.Msg {
		v, err := m.svc.CheckInHabit(m.ctx, h.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: checkInLog(v)}
	}
}

func (m boardModel) breakCmd(h engine.Habit) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.BreakHabit(m.ctx, h.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: fmt.Sprintf("Broke %q. Streak reset.", h.Name)}
	}
}

func (m boardModel) completeCmd(q engine.Quest) tea.Cmd {
	return func() tea.Msg {
		v, err := m.svc.CompleteQuest(m.ctx, q.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: fmt.Sprintf("Completed %q: +%d XP%s", v.Quest.Title, v.Quest.XP, levelLog(v.Award))}
	}
}

func (m boardModel) waterCmd() tea.Cmd {
	return func() tea.Msg {
		v, err := m.svc.UpdateHydration(m.ctx, 1)
		if err != nil {
			return actionMsg{err: err}
		}
		log := fmt.Sprintf("Water %d/%d.", v.Result.Glasses, v.Result.Goal)
		if v.Award != nil {
			log += fmt.Sprintf(" Goal reached: +%d XP%s", v.Award.Amount, levelLog(*v.Award))
		}
		return actionMsg{log: log}
	}
}

func checkInLog(v *engine.CheckInView) string {
	switch v.Outcome.Result {
	case engine.CheckInAlreadyDone:
		return fmt.Sprintf("%q is already done today.", v.Habit.Name)
	case engine.CheckInStale:
		return fmt.Sprintf("%q was checked in on a later day; ignored.", v.Habit.Name)
	}
	log := fmt.Sprintf("%q streak %d", v.Habit.Name, v.Habit.Streak)
	if v.Award != nil {
		log += fmt.Sprintf(": +%d XP%s", v.Award.Amount, levelLog(*v.Award))
	}
	if v.Outcome.BecameFormed {
		log += " Habit formed!"
	}
	return log
}

func levelLog(res engine.AwardResult) string {
	if !res.LevelUp {
		return ""
	}
	return fmt.Sprintf(" (level %d → %d)", res.LevelBefore, res.LevelAfter)
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := min(max(msg.Width/2-12, 10), 40)
		m.xpBar.Width = w
		m.rankBar.Width = w
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.items = buildItems(msg.status)
		if m.selected >= len(m.items) {
			m.selected = len(m.items) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.items)-1 {
				m.selected++
			}
			return m, nil
		case "w":
			return m, m.waterCmd()
		case "enter", " ", "c":
			item, ok := m.current()
			if !ok {
				return m, nil
			}
			if item.habit != nil {
				return m, m.checkInCmd(*item.habit)
			}
			return m, m.completeCmd(*item.quest)
		case "b":
			item, ok := m.current()
			if !ok || item.habit == nil {
				m.lastLog = "Select a habit to break."
				return m, nil
			}
			return m, m.breakCmd(*item.habit)
		}
	}
	return m, nil
}

func (m boardModel) current() (boardItem, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return boardItem{}, false
	}
	return m.items[m.selected], true
}

func buildItems(st *engine.Status) []boardItem {
	var out []boardItem
	for i := range st.Habits {
		out = append(out, boardItem{habit: &st.Habits[i]})
	}
	for i := range st.OpenQuests {
		out = append(out, boardItem{quest: &st.OpenQuests[i]})
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.status == nil {
		return "LifeQuest: loading…\n"
	}

	left := ui.Panel.Render(m.renderSheet())
	right := ui.Panel.Render(m.renderLog())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	if m.width > 0 && lipgloss.Width(body) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return body + "\n" + m.renderFooter()
}

func (m boardModel) renderSheet() string {
	st := m.status
	p := st.Progression

	lines := []string{
		ui.PanelTitle.Render("Character"),
		fmt.Sprintf("Level %d  %s", p.Level, ui.RankText(st.Rank)),
		fmt.Sprintf("XP %s %d/%d", m.xpBar.ViewAs(float64(p.XP)/float64(max(p.MaxXP, 1))), p.XP, p.MaxXP),
	}
	if st.NextRank != nil {
		lines = append(lines, fmt.Sprintf("➜ %s %s", m.rankBar.ViewAs(st.RankProgress), st.NextRank.Title()))
	} else {
		lines = append(lines, "➜ top rank reached")
	}
	lines = append(lines,
		ui.GoldText(p.Gold),
		"",
		ui.PanelTitle.Render("Attributes"),
		fmt.Sprintf("STR %-3d INT %-3d WIS %-3d", p.Attributes.Strength, p.Attributes.Intelligence, p.Attributes.Wisdom),
		fmt.Sprintf("VIT %-3d CHA %-3d", p.Attributes.Vitality, p.Attributes.Charisma),
		"",
		fmt.Sprintf("%s %s", ui.IconWater, ui.Bar(st.Hydration.Glasses, st.Hydration.Goal, st.Hydration.Goal)),
	)
	if len(st.ClassesToday) > 0 {
		lines = append(lines, "", ui.PanelTitle.Render("Today"))
		for _, c := range st.ClassesToday {
			lines = append(lines, fmt.Sprintf("%s %s %s", ui.IconClock, c.Start, c.Name))
		}
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderLog() string {
	today := m.status.Today
	out := []string{ui.PanelTitle.Render("Habits")}
	if len(m.status.Habits) == 0 {
		out = append(out, ui.Muted.Render("(none yet: lq habit add <name>)"))
	}

	for i, it := range m.items {
		if it.quest != nil && (i == 0 || m.items[i-1].habit != nil) {
			out = append(out, "", ui.PanelTitle.Render("Quests"))
		}
		var row string
		if h := it.habit; h != nil {
			done := "  "
			if h.LastCompleted != nil && h.LastCompleted.SameDay(today) {
				done = ui.IconDone
			}
			row = fmt.Sprintf("%s %s %s  %d day(s)", done, ui.HabitIcon(*h, today), h.Name, h.Streak)
		} else {
			q := it.quest
			row = fmt.Sprintf("%s %s (+%d XP)", ui.QuestIcon(*q), q.Title, q.XP)
			if q.Due != nil {
				due := "due " + q.Due.String()
				if q.Overdue(today) {
					due = ui.Bad.Render("overdue")
				}
				row += " " + due
			}
		}
		if i == m.selected {
			row = ui.SelectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		out = append(out, row)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("↑/↓ move · enter check in/complete · b break · w water · r refresh · q quit")
	if m.loading {
		return keys + "\nLoading…"
	}
	return keys + "\n" + m.lastLog
}
