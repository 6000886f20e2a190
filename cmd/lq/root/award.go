package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newAwardCmd() *cobra.Command {
	var category string
	var reason string

	cmd := &cobra.Command{
		Use:   "award <xp>",
		Short: "Award XP for something you did",
		Long: `Award XP in an optional category. Half the XP is paid as gold and the
category's attribute goes up by one.

A negative amount is a penalty: it costs the same amount of gold and drains XP
down to zero without losing levels. Pass it after "--", e.g. lq award -- -20.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("xp is required")
			}
			_, err := parseSignedInt(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			amount, _ := parseSignedInt(args[0])
			res, err := svc.AwardXP(ctx, engine.AwardInput{
				Amount:   amount,
				Category: engine.ParseCategory(category),
				Reason:   reason,
			})
			if err != nil {
				return err
			}
			printAward(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (fitness|study|reading|work|mindfulness|health|social|chores|...)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "What the XP is for")

	return cmd
}

func newSpendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend <cost> [item]",
		Short: "Spend gold on a reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("cost is required")
			}
			_, err := parseSignedInt(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cost, _ := parseSignedInt(args[0])
			item := strings.Join(args[1:], " ")
			res, err := svc.SpendGold(ctx, cost, item)
			var insufficient engine.InsufficientGoldError
			if errors.As(err, &insufficient) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s need %d, have %d\n", ui.Warn.Render(ui.IconWarn+" Not enough gold:"), insufficient.Cost, insufficient.Have)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconCoin+" Spent"), ui.Signed(-res.Cost, "gold"), ui.Muted.Render(fmt.Sprintf("(%d left)", res.GoldAfter)))
			return nil
		},
	}

	return cmd
}
