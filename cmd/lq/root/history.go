package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rewards and penalties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing earned yet."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Reward log"))
			for _, e := range entries {
				reason := e.Reason
				if reason == "" {
					reason = "-"
				}
				fmt.Fprintf(out, "%s %-9s %s %s  %s %s\n",
					ui.Muted.Render(e.AwardedAt.Local().Format("2006-01-02 15:04")),
					e.Source,
					ui.Signed(e.Amount, "XP"),
					ui.Signed(e.GoldDelta, "gold"),
					reason,
					ui.Muted.Render(fmt.Sprintf("L%d", e.LevelAfter)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over: wipe the character sheet, habits, quests and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this erases all progress; rerun with --yes to confirm")
			}
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconSeed+" Fresh start. Level 1."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
