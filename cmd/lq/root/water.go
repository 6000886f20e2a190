package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newWaterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water [+n|-n]",
		Short: "Log glasses of water (default +1)",
		Long:  "Log glasses of water for today. Remove a mistaken entry with a negative amount after \"--\", e.g. lq water -- -1.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one amount")
			}
			if len(args) == 1 {
				_, err := parseSignedInt(args[0])
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			delta := 1
			if len(args) == 1 {
				delta, _ = parseSignedInt(args[0])
			}

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.UpdateHydration(ctx, delta)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.IconWater, ui.Bar(v.Result.Glasses, v.Result.Goal, v.Result.Goal), v.Result.Glasses, v.Result.Goal)
			if v.Award != nil {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Daily goal reached!"))
				printAward(out, v.Award)
			}
			return nil
		},
	}

	return cmd
}
