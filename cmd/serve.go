/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gregriff/ytlc/internal/logging"
	"github.com/gregriff/ytlc/internal/preview"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator as a web page",
	Long: `Serve the simulated chat feed with the converted stylesheet applied, for checking CSS in a browser
or adding the page as a browser source. The feed is driven from the page controls or the /api endpoints.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringP("listen", "l", "", "preview server address")
	viper.BindPFlag("listen", rootCmd.PersistentFlags().Lookup("listen"))
	viper.SetDefault("listen", "127.0.0.1:8123")

	rootCmd.PersistentFlags().Float64("rate-limit", 0, "control requests allowed per second")
	viper.BindPFlag("rate-limit", rootCmd.PersistentFlags().Lookup("rate-limit"))
	viper.SetDefault("rate-limit", 20.0)

	rootCmd.PersistentFlags().Int("rate-burst", 0, "control request burst size")
	viper.BindPFlag("rate-burst", rootCmd.PersistentFlags().Lookup("rate-burst"))
	viper.SetDefault("rate-burst", 10)

	serveCmd.Flags().Bool("no-controls", false, "hide the control buttons, e.g. for a clean browser source")
	serveCmd.Flags().BoolP("auto", "a", false, "start in auto mode")
}

func serverOptions(controls bool) preview.Options {
	return preview.Options{
		Address:   viper.GetString("listen"),
		Converter: converter(),
		RateLimit: rate.Limit(viper.GetFloat64("rate-limit")),
		RateBurst: viper.GetInt("rate-burst"),
		Controls:  controls,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// no TUI owns the terminal here, log to stderr
	logger := logging.New(os.Stderr, viper.GetString("log-level"))
	logging.SetLogger(logger)

	a, err := newApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	noControls, _ := cmd.Flags().GetBool("no-controls")
	srv := preview.NewServer(a.ctrl, a.styles, logger, serverOptions(!noControls))
	if err := srv.Reload(ctx); err != nil {
		logger.Warn("serving the default template", "err", err)
	}

	a.ctrl.Start(ctx)
	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		go func() {
			if a.ctrl.WaitReady(ctx) == nil {
				a.ctrl.StartAuto()
			}
		}()
	}
	return srv.Start(ctx)
}
