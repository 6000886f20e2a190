package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Keep a weekly class timetable",
	}
	cmd.AddCommand(
		newClassAddCmd(),
		newClassListCmd(),
		newClassTodayCmd(),
		newClassRemoveCmd(),
	)
	return cmd
}

func classLine(c engine.Class) string {
	line := fmt.Sprintf("%s %s", ui.Key.Render(c.Start), c.Name)
	if c.Room != "" {
		line += " " + ui.Muted.Render("@ "+c.Room)
	}
	if c.Weeks != engine.WeeksAll {
		line += " " + ui.Muted.Render("("+string(c.Weeks)+" weeks)")
	}
	return line
}

func newClassAddCmd() *cobra.Command {
	var day string
	var at string
	var room string
	var weeks string

	cmd := &cobra.Command{
		Use:   "add <name> --day <weekday> --at <HH:MM>",
		Short: "Add a recurring class",
		Args:  atLeastOne("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.AddClass(ctx, engine.ClassInput{
				Name:    strings.Join(args, " "),
				Weekday: day,
				Start:   at,
				Room:    room,
				Weeks:   weeks,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Class"), c.Weekday, classLine(*c))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday (mon, tuesday, ...)")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&room, "room", "", "Room")
	cmd.Flags().StringVar(&weeks, "weeks", string(engine.WeeksAll), "Which ISO weeks (all|even|odd)")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newClassListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the whole timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classes, err := svc.ListClasses(ctx)
			if err != nil {
				return err
			}
			if len(classes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Timetable is empty."))
				return nil
			}
			for _, c := range classes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s %s\n", c.Weekday, ui.Muted.Render(shortID(c.ID)), classLine(c))
			}
			return nil
		},
	}
}

func newClassTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, fmt.Sprintf("%s %s", st.Today.Weekday(), st.Today)))
			if len(st.ClassesToday) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No classes today."))
			}
			for _, c := range st.ClassesToday {
				fmt.Fprintln(out, classLine(c))
			}
			return nil
		},
	}
}

func newClassRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <class>",
		Aliases: []string{"remove"},
		Short:   "Remove a class",
		Args:    atLeastOne("class"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.RemoveClass(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("Removed"), c.Name)
			return nil
		},
	}
}
