package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track daily habits and streaks",
	}
	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitListCmd(),
		newHabitDoneCmd(),
		newHabitBreakCmd(),
		newHabitRemoveCmd(),
	)
	return cmd
}

func atLeastOne(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func newHabitAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a habit",
		Args:  atLeastOne("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.AddHabit(ctx, strings.Join(args, " "), engine.ParseCategory(category))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Habit"), h.Name, ui.Muted.Render(shortID(h.ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category the check-ins count toward")
	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with their streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Try: lq habit add \"Read 20 pages\" -c reading"))
				return nil
			}
			today := svc.Today()
			for _, h := range habits {
				last := "never"
				if h.LastCompleted != nil {
					last = h.LastCompleted.String()
				}
				fmt.Fprintf(out, "%s %s %s  streak %d  %s  %s\n",
					ui.HabitIcon(h, today), ui.Muted.Render(shortID(h.ID)), h.Name, h.Streak,
					ui.StageText(h.Stage()), ui.Muted.Render("last "+last))
			}
			return nil
		},
	}
}

func newHabitDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <habit>",
		Short: "Check in a habit for today",
		Args:  atLeastOne("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.CheckInHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch v.Outcome.Result {
			case engine.CheckInAlreadyDone:
				fmt.Fprintf(out, "%s %s already checked in today\n", ui.Muted.Render(ui.IconInfo), v.Habit.Name)
				return nil
			case engine.CheckInStale:
				fmt.Fprintf(out, "%s %s has a check-in after today; nothing recorded\n", ui.Warn.Render(ui.IconWarn), v.Habit.Name)
				return nil
			case engine.CheckInRestarted:
				if v.Outcome.StreakBefore > 0 {
					fmt.Fprintf(out, "%s streak of %d lapsed, starting over\n", ui.Muted.Render(ui.IconSeed), v.Outcome.StreakBefore)
				}
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconFire+" Streak"), ui.Gold.Render(fmt.Sprintf("%d", v.Habit.Streak)), v.Habit.Name)
			if v.Outcome.BecameFormed {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconTrophy, ui.BadgeFormed, ui.Muted.Render(fmt.Sprintf("(%d days in a row)", engine.FormedStreak)))
			}
			printAward(out, v.Award)
			return nil
		},
	}
}

func newHabitBreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "break <habit>",
		Short: "Admit a slip: the streak resets (formed habits stay formed)",
		Args:  atLeastOne("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.BreakHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s streak reset\n", ui.Warn.Render(ui.IconWarn), h.Name)
			return nil
		},
	}
}

func newHabitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <habit>",
		Aliases: []string{"remove"},
		Short:   "Stop tracking a habit",
		Args:    atLeastOne("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.RemoveHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("Removed"), h.Name)
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
