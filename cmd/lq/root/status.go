package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the character sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			failed, err := svc.FailOverdueRaids(ctx)
			if err != nil {
				return err
			}
			printRaidFailures(out, failed)

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			p := st.Progression

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Character Sheet"))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d  %s", p.Level, ui.RankText(st.Rank))))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d", ui.Bar(p.XP, p.MaxXP, 20), p.XP, p.MaxXP)))
			if st.NextRank != nil {
				fmt.Fprintln(out, ui.LabelValue("Next rank", fmt.Sprintf("%s %.0f%% to %s (level %d)",
					ui.Bar(int(st.RankProgress*100), 100, 20), st.RankProgress*100, st.NextRank.Title(), st.NextRank.MinLevel)))
			}
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.GoldText(p.Gold)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			fmt.Fprintf(out, "- 💪 STR %d   🧠 INT %d   🧘 WIS %d\n", p.Attributes.Strength, p.Attributes.Intelligence, p.Attributes.Wisdom)
			fmt.Fprintf(out, "- ❤️ VIT %d   🗣️ CHA %d\n", p.Attributes.Vitality, p.Attributes.Charisma)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Habits"))
			if len(st.Habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, h := range st.Habits {
				fmt.Fprintf(out, "- %s %s  %d day(s) %s\n", ui.HabitIcon(h, st.Today), h.Name, h.Streak, ui.StageText(h.Stage()))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Quests"))
			if len(st.OpenQuests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none open)"))
			}
			for _, q := range st.OpenQuests {
				fmt.Fprintln(out, "- "+questLine(q, st.Today))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintf(out, "%s %s %d/%d\n", ui.IconWater, ui.Bar(st.Hydration.Glasses, st.Hydration.Goal, st.Hydration.Goal), st.Hydration.Glasses, st.Hydration.Goal)
			for _, c := range st.ClassesToday {
				fmt.Fprintln(out, ui.IconClock+" "+classLine(c))
			}
			return nil
		},
	}

	return cmd
}
