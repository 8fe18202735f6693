/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/gregriff/ytlc/internal/storage"
	"github.com/gregriff/ytlc/internal/stylesheet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stylesheetCmd groups the commands that manage the saved stylesheet
var stylesheetCmd = &cobra.Command{
	Use:   "stylesheet",
	Short: "Manage the saved stylesheet",
}

// withStyles opens the database for the duration of fn.
func withStyles(fn func(db *storage.Store, styles *stylesheet.Store) error) error {
	db, styles, err := openStyles()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, styles)
}

var stylesheetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved stylesheet, or the default template if none is saved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStyles(func(db *storage.Store, styles *stylesheet.Store) error {
			text, err := styles.Load(cmd.Context())
			if err != nil {
				return err
			}
			if at, found, err := db.UpdatedAt(cmd.Context(), stylesheet.StorageKey); err == nil && found {
				fmt.Fprintln(cmd.ErrOrStderr(), "saved", at.Local().Format("2006-01-02 15:04:05"))
			} else if err == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "no saved stylesheet, showing the default template")
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		})
	},
}

var stylesheetSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save a stylesheet from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			text string
			err  error
		)
		if len(args) > 0 {
			text, err = stylesheet.Import(args[0])
		} else {
			var data []byte
			data, err = io.ReadAll(cmd.InOrStdin())
			text = string(data)
		}
		if err != nil {
			return err
		}
		return withStyles(func(_ *storage.Store, styles *stylesheet.Store) error {
			if err := styles.Save(cmd.Context(), text); err != nil {
				return err
			}
			for _, sel := range stylesheet.Conflicts(text) {
				fmt.Fprintln(cmd.ErrOrStderr(), "overridden by base styles:", sel)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d bytes\n", len(text))
			return nil
		})
	},
}

var stylesheetResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Print the default template. The saved stylesheet is left untouched",
	Long: `Print the default template so it can be edited and saved again with "stylesheet save".
Nothing is persisted. Use "stylesheet forget" to drop the saved stylesheet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStyles(func(_ *storage.Store, styles *stylesheet.Store) error {
			fmt.Fprint(cmd.OutOrStdout(), styles.Reset())
			return nil
		})
	},
}

var stylesheetForgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Delete the saved stylesheet so the default template is used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStyles(func(db *storage.Store, _ *stylesheet.Store) error {
			return db.Delete(cmd.Context(), stylesheet.StorageKey)
		})
	},
}

var stylesheetExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the saved stylesheet to a file (default " + stylesheet.DefaultExportName + ")",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := viper.GetString("export-path")
		if len(args) > 0 {
			dest = args[0]
		}
		if dest == "" {
			dest = "."
		}
		return withStyles(func(_ *storage.Store, styles *stylesheet.Store) error {
			text, err := styles.Load(cmd.Context())
			if err != nil {
				return err
			}
			path, err := stylesheet.Export(dest, text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exported to", path)
			return nil
		})
	},
}

var stylesheetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Read a stylesheet file and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := stylesheet.Import(args[0])
		if err != nil {
			return err
		}
		return withStyles(func(_ *storage.Store, styles *stylesheet.Store) error {
			return styles.Save(cmd.Context(), text)
		})
	},
}

func init() {
	rootCmd.AddCommand(stylesheetCmd)
	stylesheetCmd.AddCommand(
		stylesheetShowCmd,
		stylesheetSaveCmd,
		stylesheetResetCmd,
		stylesheetForgetCmd,
		stylesheetExportCmd,
		stylesheetImportCmd,
	)
}
