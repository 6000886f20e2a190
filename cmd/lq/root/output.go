package root

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func printAward(w io.Writer, res *engine.AwardResult) {
	if res == nil {
		return
	}
	parts := []string{ui.Signed(res.Amount, "XP"), ui.Signed(res.GoldDelta, "gold")}
	if res.Attribute != engine.AttributeNone {
		parts = append(parts, ui.Muted.Render("+1 "+string(res.Attribute)))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
	if res.LevelUp {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
		before, after := engine.ResolveRank(res.LevelBefore), engine.ResolveRank(res.LevelAfter)
		if before.Title() != after.Title() {
			fmt.Fprintf(w, "%s New rank: %s\n", ui.IconTrophy, ui.RankText(after))
		}
	}
}

func printRaidFailures(w io.Writer, failed []engine.RaidFailure) {
	for _, f := range failed {
		fmt.Fprintf(w, "%s %s %s\n", ui.Bad.Render(ui.IconBoss+" Raid failed:"), f.Quest.Title, ui.Signed(f.Penalty.Amount, "XP"))
	}
}

// parseSignedInt accepts "5", "+5" and "-5".
func parseSignedInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

// renderMarkdown renders model output for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
