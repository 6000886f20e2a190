package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage one-off quests and boss raids",
	}
	cmd.AddCommand(
		newQuestAddCmd(),
		newQuestListCmd(),
		newQuestDoneCmd(),
		newQuestRemoveCmd(),
	)
	return cmd
}

func questLine(q engine.Quest, today engine.Date) string {
	line := fmt.Sprintf("%s %s %s %s", ui.QuestIcon(q), ui.Muted.Render(shortID(q.ID)), q.Title, ui.Gold.Render(fmt.Sprintf("+%d XP", q.XP)))
	switch {
	case q.Failed:
		line += " " + ui.Bad.Render("failed")
	case q.Done:
		line += " " + ui.Good.Render("done")
	case q.Due != nil && q.Overdue(today):
		line += " " + ui.Bad.Render("overdue "+q.Due.String())
	case q.Due != nil:
		line += " " + ui.Muted.Render("due "+q.Due.String())
	}
	return line
}

func newQuestAddCmd() *cobra.Command {
	var difficulty string
	var category string
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest (boss raids need --due)",
		Args:  atLeastOne("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.QuestInput{
				Title:      strings.Join(args, " "),
				Category:   engine.ParseCategory(category),
				Difficulty: engine.ParseDifficulty(difficulty),
			}
			if due != "" {
				d, err := engine.ParseDate(due)
				if err != nil {
					return err
				}
				in.Due = &d
			}
			q, err := svc.AddQuest(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Quest"), questLine(*q, svc.Today()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(engine.DefaultDifficulty), "Difficulty (easy|medium|hard|boss)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVar(&due, "due", "", "Deadline (YYYY-MM-DD)")

	return cmd
}

func newQuestListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			failed, err := svc.FailOverdueRaids(ctx)
			if err != nil {
				return err
			}
			printRaidFailures(cmd.OutOrStdout(), failed)

			quests, err := svc.ListQuests(ctx, all)
			if err != nil {
				return err
			}
			if len(quests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests."))
				return nil
			}
			today := svc.Today()
			for _, q := range quests {
				fmt.Fprintln(cmd.OutOrStdout(), questLine(q, today))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include finished quests")
	return cmd
}

func newQuestDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <quest>",
		Short: "Complete a quest",
		Args:  atLeastOne("quest"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.CompleteQuest(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Completed"), v.Quest.Title)
			printAward(cmd.OutOrStdout(), &v.Award)
			return nil
		},
	}
}

func newQuestRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <quest>",
		Aliases: []string{"remove"},
		Short:   "Delete a quest without reward",
		Args:    atLeastOne("quest"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.RemoveQuest(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("Removed"), q.Title)
			return nil
		},
	}
}
