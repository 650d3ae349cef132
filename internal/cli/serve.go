package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/server"
)

// NewServeCmd creates the serve command, which runs the web form and JSON
// API until interrupted.
func NewServeCmd() *cobra.Command {
	var (
		addr        string
		factorsFile string
		rounding    RoundingFlag
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serves the calculator form at /, the JSON API at /api/v1/footprint and
/api/v1/regions, a health check at /healthz and Prometheus metrics at
/metrics. SIGINT or SIGTERM shuts the server down gracefully.`,
		Example: `  # Serve on the configured address
  footprint serve

  # Serve on a specific port with a custom factor table
  footprint serve --addr 127.0.0.1:9090 --factors ./factors.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			calc, err := newCalculator(ctx, calculatorOptions{FactorsFile: factorsFile, Rounding: rounding.Value})
			if err != nil {
				return err
			}
			defaults, err := configuredActivity()
			if err != nil {
				return err
			}

			srvCfg := config.GetServerConfig()
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}

			srv, err := server.New(calc, server.Config{
				Addr:            srvCfg.Addr,
				RateLimit:       srvCfg.RateLimit,
				Burst:           srvCfg.Burst,
				ShutdownTimeout: srvCfg.ShutdownTimeout,
				Defaults:        defaults,
			}, server.WithLogger(*logging.FromContext(ctx)))
			if err != nil {
				return err
			}

			cmd.Printf("Serving footprint calculator on %s\n", srvCfg.Addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&factorsFile, "factors", "", "emission factor table file (.yaml or .json)")
	cmd.Flags().Var(&rounding, "rounding", "rounding mode: half-up or half-even (default from config)")

	return cmd
}
