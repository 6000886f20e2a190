package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/ai"
	"lifequest/internal/bridge"
	"lifequest/internal/ui"
)

func newSuggestCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "suggest [effort]",
		Short: "Let the AI game master price your effort in XP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			gen, err := ai.NewGenerator(ctx, a.cfg.AI.APIKey)
			if errors.Is(err, ai.ErrDisabled) {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+err.Error()))
				return nil
			}
			if err != nil {
				return err
			}

			st, err := a.svc.Status(ctx)
			if err != nil {
				return err
			}
			effort := strings.Join(args, " ")
			sug, err := ai.NewGeminiSuggester(gen, a.cfg.AI, a.log).Suggest(ctx, ai.Request(st, effort))
			if errors.Is(err, ai.ErrRateLimited) {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" The game master is busy. Try again in a minute, or use lq award."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, renderMarkdown(sug.Feedback))
			line := ui.LabelValue("Suggested", ui.Gold.Render(fmt.Sprintf("%d XP", sug.XP)))
			if sug.Difficulty != "" {
				line += " " + ui.Muted.Render("("+sug.Difficulty+")")
			}
			if sug.Rank != "" {
				line += " " + ui.Muted.Render("\""+sug.Rank+"\"")
			}
			fmt.Fprintln(out, line)
			if sug.Fallback {
				fmt.Fprintln(out, ui.Muted.Render("(baseline reward: the answer could not be read)"))
			}
			if dryRun {
				return nil
			}

			res, err := ai.Apply(ctx, a.svc, sug, effort)
			if err != nil {
				return err
			}
			printAward(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the suggestion without awarding it")
	return cmd
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Chat with the assistant; it can add quests, check in habits and more",
		Args:  atLeastOne("message"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			gen, err := ai.NewGenerator(ctx, a.cfg.AI.APIKey)
			if errors.Is(err, ai.ErrDisabled) {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+err.Error()))
				return nil
			}
			if err != nil {
				return err
			}

			br := bridge.New(a.svc, a.log.Named("bridge"))
			reply, err := ai.NewAssistant(gen, a.cfg.AI, br, a.log).Ask(ctx, strings.Join(args, " "))
			for _, r := range reply.Actions {
				printActionResult(cmd, r)
			}
			if errors.Is(err, ai.ErrRateLimited) {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" The assistant is rate limited. Try again shortly."))
				return nil
			}
			if err != nil {
				return err
			}
			if reply.Text != "" {
				fmt.Fprint(out, renderMarkdown(reply.Text))
			}
			return nil
		},
	}

	return cmd
}

func printActionResult(cmd *cobra.Command, r bridge.Result) {
	out := cmd.OutOrStdout()
	switch {
	case r.Ignored:
		fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(ui.IconRobot+" skipped"), ui.Muted.Render(r.Message))
	case r.Err != nil:
		fmt.Fprintf(out, "%s %s: %s\n", ui.Bad.Render(ui.IconRobot+" failed"), r.Action, r.Err)
	default:
		fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconRobot+" "+r.Action), r.Message)
	}
}
