package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/logging"
	"github.com/rushteam/carmatch/metrics"
)

type recommendOptions struct {
	budget      float64
	experience  string
	useCase     string
	brands      []string
	fuelEconomy bool
	pretty      bool
	metrics     bool
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the top matching cars as JSON",
		Long: `Recommend cars for the given preferences.

Examples:
  # Novice city driver who cares about fuel
  carmatch recommend --inventory cars.yaml --budget 20000 --experience novice --use-case city --fuel-economy

  # Restrict to brands
  carmatch recommend --inventory cars.json --budget 35000 --experience expert --use-case highway --brand Audi --brand BMW`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, root, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.budget, "budget", 0, "maximum price (required, > 0)")
	cmd.Flags().StringVar(&opts.experience, "experience", "", "novice | intermediate | expert")
	cmd.Flags().StringVar(&opts.useCase, "use-case", "", "city | highway | mixed | offroad")
	cmd.Flags().StringSliceVar(&opts.brands, "brand", nil, "preferred brand (repeatable); empty means any brand")
	cmd.Flags().BoolVar(&opts.fuelEconomy, "fuel-economy", false, "prioritise fuel economy (consumption <= 7.0 l/100km)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", true, "indent the JSON output; --pretty=false prints one line")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "write engine metrics in Prometheus text format to stderr")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("experience")
	_ = cmd.MarkFlagRequired("use-case")
	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	ctx := logging.ContextWithRequestID(cmd.Context(), logging.GenerateRequestID())

	a, err := newApp(ctx, root)
	if err != nil {
		return err
	}
	defer a.Close()

	prefs := core.Preferences{
		Budget:              opts.budget,
		Experience:          core.Experience(opts.experience),
		UseCase:             core.UseCase(opts.useCase),
		BrandPreferences:    opts.brands,
		FuelEconomyPriority: opts.fuelEconomy,
	}
	results, err := a.engine.Recommend(ctx, prefs)
	if err != nil {
		return err
	}

	var out []byte
	if opts.pretty {
		out, err = json.MarshalIndent(results, "", "  ")
	} else {
		out, err = json.Marshal(results)
	}
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(append(out, '\n')); err != nil {
		return err
	}
	if opts.metrics {
		return metrics.WriteText(cmd.ErrOrStderr(), a.registry)
	}
	return nil
}
