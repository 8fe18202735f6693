/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gregriff/ytlc/internal"
	"github.com/gregriff/ytlc/internal/host"
	"github.com/gregriff/ytlc/internal/logging"
	"github.com/gregriff/ytlc/internal/preview"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	zone "github.com/lrstanley/bubblezone/v2"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the live chat simulator",
	Long: `Start the simulator in the terminal. The saved stylesheet is loaded into the CSS editor.
If stdin is not a terminal, it is read as CSS and the converted stylesheet is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().Duration("auto-interval", 0, "time between messages in auto mode")
	viper.BindPFlag("auto-interval", rootCmd.PersistentFlags().Lookup("auto-interval"))
	viper.SetDefault("auto-interval", "2s")

	rootCmd.PersistentFlags().Duration("initial-delay", 0, "delay before the intro messages appear")
	viper.BindPFlag("initial-delay", rootCmd.PersistentFlags().Lookup("initial-delay"))
	viper.SetDefault("initial-delay", "1s")

	rootCmd.PersistentFlags().Duration("demo-step", 0, "spacing of the test-all and demo batches")
	viper.BindPFlag("demo-step", rootCmd.PersistentFlags().Lookup("demo-step"))
	viper.SetDefault("demo-step", "300ms")

	rootCmd.PersistentFlags().Duration("mass-step", 0, "spacing of the mass chat batch")
	viper.BindPFlag("mass-step", rootCmd.PersistentFlags().Lookup("mass-step"))
	viper.SetDefault("mass-step", "200ms")

	runCmd.Flags().StringP("style", "s", "", "glamour style used to render the help and debug overlays (default dark)")
	viper.BindPFlag("style", runCmd.Flags().Lookup("style"))
	viper.SetDefault("style", "dark")

	runCmd.Flags().String("export-path", "", "file or directory for stylesheet export and import")
	viper.BindPFlag("export-path", runCmd.Flags().Lookup("export-path"))
	viper.SetDefault("export-path", ".")

	runCmd.Flags().BoolP("preview", "p", false, "also serve the browser preview, sharing this session's feed")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := logging.Init(logging.DefaultDir(), viper.GetString("log-level")); err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
	}
	defer logging.Close()

	// if stdin is a pipe
	if host.Detect() == host.ModePipe {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading from stdin: %w", err)
		}
		logging.Info("converting piped stylesheet", "bytes", len(input))
		fmt.Print(converter().Convert(string(input)))
		return nil
	}

	a, err := newApp(logging.Logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := internal.Options{
		Converter:    converter(),
		GlamourStyle: viper.GetString("style"),
		ExportPath:   viper.GetString("export-path"),
	}
	if withPreview, _ := cmd.Flags().GetBool("preview"); withPreview {
		srv := preview.NewServer(a.ctrl, a.styles, logging.Logger, serverOptions(true))
		if err := srv.Reload(ctx); err != nil {
			logging.Warn("preview starts with the default template", "err", err)
		}
		go func() {
			if err := srv.Start(ctx); err != nil {
				logging.Error("preview server failed", "err", err)
			}
		}()
		opts.Preview = srv
	}

	// Run TUI application
	logging.Debug("starting tui", "style", opts.GlamourStyle, "preview", opts.Preview != nil)
	zone.NewGlobal()
	tui, err := internal.NewTUI(ctx, a.ctrl, a.styles, logging.Logger, opts)
	if err != nil {
		return err
	}
	return tui.Start()
}
