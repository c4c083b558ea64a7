// Command bedtime calculates a recommended bedtime from the terminal using the same
// sleep model configuration as the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/blaisecz/bedtime-advisor/internal/app"
	"github.com/blaisecz/bedtime-advisor/internal/config"
	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/blaisecz/bedtime-advisor/internal/repository"
	"github.com/blaisecz/bedtime-advisor/internal/service"
	"github.com/spf13/cobra"
)

// errAlertShown means the failure alert was already printed.
var errAlertShown = errors.New("bedtime calculation failed")

// modelFactory builds the sleep model for a run.
type modelFactory func(ctx context.Context, cfg *config.Config) (model.SleepModel, error)

func main() {
	cmd := newRootCmd(config.Load(), configuredModel)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errAlertShown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// configuredModel opens the registry only when the registry backend is selected.
func configuredModel(ctx context.Context, cfg *config.Config) (model.SleepModel, error) {
	var source model.ActiveModelSource
	if cfg.ModelBackend == config.BackendRegistry && cfg.HasDatabase() {
		db, err := config.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		source = repository.NewRegressionModelRepository(db)
	}
	return app.NewSleepModelOrUnavailable(ctx, cfg, source)
}

func newRootCmd(cfg *config.Config, newModel modelFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bedtime",
		Short:         "Recommend a bedtime from wake time, sleep goal and caffeine intake",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(calcCmd(cfg, newModel))
	rootCmd.AddCommand(defaultsCmd())
	return rootCmd
}

func calcCmd(cfg *config.Config, newModel modelFactory) *cobra.Command {
	defaults := domain.DefaultBedtimeInput()

	var (
		wake   string
		sleep  float64
		coffee int
		locale string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate your ideal bedtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wakeTime, err := domain.ParseClockTime(wake)
			if err != nil {
				return err
			}
			in := domain.BedtimeInput{WakeTime: wakeTime, SleepGoalHours: sleep, CaffeineCups: coffee}
			if err := in.Validate(); err != nil {
				return err
			}

			sleepModel, err := newModel(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			result, err := service.NewBedtimeService(sleepModel, cfg.DefaultLocale).Calculate(cmd.Context(), in, locale)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Alert.Title)
			fmt.Fprintln(out, result.Alert.Message)
			if !result.Succeeded() {
				return errAlertShown
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wake, "wake", defaults.WakeTime.String(), "wake-up time (HH:MM, 24-hour)")
	cmd.Flags().Float64Var(&sleep, "sleep", defaults.SleepGoalHours, "desired hours of sleep (4-12, quarter-hour steps)")
	cmd.Flags().IntVar(&coffee, "coffee", defaults.CaffeineCups, "daily cups of coffee (0-20)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale for the displayed time (defaults to DEFAULT_LOCALE)")
	return cmd
}

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Show the default inputs and their ranges",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			d := domain.NewBedtimeDefaultsResponse()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "When do you want to wake up?   %s\n", d.WakeTime)
			fmt.Fprintf(out, "Desired amount of sleep        %s (%g-%g, step %g)\n",
				d.SleepGoalLabel, d.SleepGoalRange.Min, d.SleepGoalRange.Max, d.SleepGoalRange.Step)
			fmt.Fprintf(out, "Daily coffee intake            %s (%g-%g)\n",
				d.CaffeineLabel, d.CaffeineRange.Min, d.CaffeineRange.Max)
		},
	}
}
