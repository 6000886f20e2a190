package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

const Version = "0.2.0"

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:           "lq",
	Short:         "LifeQuest: your life as an RPG character sheet",
	Long:          "LifeQuest turns habits, quests, water and classes into levels, XP, gold and attributes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $LIFEQUEST_CONFIG or ~/.lifequest/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newAwardCmd(),
		newSpendCmd(),
		newHabitCmd(),
		newQuestCmd(),
		newWaterCmd(),
		newClassCmd(),
		newBlueprintsCmd(),
		newAcceptCmd(),
		newAchievementsCmd(),
		newSuggestCmd(),
		newAskCmd(),
		newHistoryCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
