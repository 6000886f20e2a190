package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <blueprint>",
		Short: "Accept an unlocked blueprint as a new habit or quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("blueprint code is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AcceptBlueprint(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Habit != nil {
				fmt.Fprintf(out, "%s %s → habit %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), ui.Muted.Render(res.Def.Code), res.Habit.Name)
				return nil
			}
			fmt.Fprintf(out, "%s %s → %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), ui.Muted.Render(res.Def.Code), questLine(*res.Quest, svc.Today()))
			return nil
		},
	}

	return cmd
}

func newBlueprintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprints",
		Short: "List blueprints and what unlocks them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			views, err := svc.Blueprints(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range views {
				var status string
				switch v.Status {
				case engine.BlueprintAvailable:
					status = ui.Good.Render("🟢 available")
				case engine.BlueprintActive:
					status = ui.H2.Render("🟣 active")
				case engine.BlueprintCompleted:
					status = ui.Gold.Render("🏁 completed")
				default:
					status = ui.Muted.Render("🔒 " + v.Def.Hint)
				}
				fmt.Fprintf(out, "%-16s %-6s %s  %s\n", v.Def.Code, v.Def.Kind, v.Def.Title, status)
			}
			return nil
		},
	}

	return cmd
}

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show earned and open badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, a := range list {
				if a.Earned {
					earned++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", earned, len(list))))
			for _, a := range list {
				if a.Earned {
					fmt.Fprintf(out, "%s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "%s %s %s\n", "▫️", ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
