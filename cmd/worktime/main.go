// Command worktime runs the reconciliation engine from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	worktimeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "worktime",
		Short:         "Worked-time reconciliation (daily metrics, weekly overview, punch imports)",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetVersionTemplate("worktime {{.Version}}\n")

	cmd.AddCommand(
		newDailyCmd(),
		newWeeklyCmd(),
		newImportCmd(),
		newTokenCmd(),
	)
	return cmd
}

// rateFlags are the optional hourly rates shared by daily and import.
type rateFlags struct {
	base      string
	extra     string
	nocturnal string
	grace     time.Duration
}

func (f *rateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base-rate", "", "Hourly base rate (falls back to the record's embedded rate)")
	cmd.Flags().StringVar(&f.extra, "extra-rate", "", "Hourly overtime rate (default base x 1.5)")
	cmd.Flags().StringVar(&f.nocturnal, "nocturnal-rate", "", "Hourly nocturnal rate (default base x 1.35)")
	cmd.Flags().DurationVar(&f.grace, "grace", worktime.DefaultGracePeriod, "Early-arrival grace before the planned start")
}

func (f *rateFlags) config() (worktime.RateConfig, error) {
	var cfg worktime.RateConfig
	fields := []struct {
		flag   string
		raw    string
		target **decimal.Decimal
	}{
		{"--base-rate", f.base, &cfg.BaseRate},
		{"--extra-rate", f.extra, &cfg.ExtraRate},
		{"--nocturnal-rate", f.nocturnal, &cfg.NocturnalRate},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.raw) == "" {
			continue
		}
		v, err := decimal.NewFromString(field.raw)
		if err != nil {
			return worktime.RateConfig{}, fmt.Errorf("invalid %s: %w", field.flag, err)
		}
		if v.IsNegative() {
			return worktime.RateConfig{}, fmt.Errorf("%s must not be negative", field.flag)
		}
		*field.target = &v
	}
	return cfg, nil
}

func (f *rateFlags) calculator() (*worktimeService.Calculator, error) {
	if f.grace < 0 {
		return nil, fmt.Errorf("--grace must not be negative")
	}
	return worktimeService.NewCalculator(worktimeService.WithGracePeriod(f.grace)), nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
