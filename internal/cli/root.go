// Package cli implements the layerx402 command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/layerx402/layerx402"
	"github.com/layerx402/layerx402/internal/config"
	"github.com/layerx402/layerx402/logger"
	"github.com/layerx402/layerx402/metrics"
	"github.com/layerx402/layerx402/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg      *types.Config
	sdk      *layerx402.Layerx402
	registry *prometheus.Registry
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "layerx402",
		Short: "Layerx402 payment utilities",
		Long: `layerx402 validates payment proofs and wallet addresses, computes fees and
settlement splits, converts between whole units and subunits and builds the
request bodies accepted by the Layerx402 verification API.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.dumpMetrics(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (yaml or json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	root.AddCommand(
		newProofCmd(a),
		newAddressCmd(a),
		newFeeCmd(a),
		newFormatCmd(a),
		newParseCmd(a),
		newExpiredCmd(a),
		newFingerprintCmd(a),
		newPrepareCmd(a),
		newVerifyCmd(a),
		newQuoteCmd(a),
		newNetworksCmd(a),
	)

	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	opts := []layerx402.Option{
		layerx402.WithLogger(logger.NewZapLoggerForEnvironment(cfg.LogLevel, cfg.LogEnvironment)),
	}

	if cfg.EnableMetrics {
		a.registry = prometheus.NewRegistry()
		recorder, err := metrics.NewPrometheusRecorder(a.registry)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, layerx402.WithMetrics(recorder))
	}

	sdk, err := layerx402.New(cfg, opts...)
	if err != nil {
		return err
	}
	a.sdk = sdk
	return nil
}

// dumpMetrics writes collected metrics to stderr in the Prometheus text format.
func (a *app) dumpMetrics(cmd *cobra.Command) error {
	if a.registry == nil {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return err
		}
	}
	return nil
}
