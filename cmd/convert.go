/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gregriff/ytlc/internal/stylesheet"
	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a YouTube chat stylesheet for the simulator",
	Long: `Rewrite YouTube live chat selectors onto the simulator markup and append the simulator base styles.
Reads the file, or stdin when no file is given, and prints the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			input []byte
			err   error
		)
		if len(args) > 0 {
			input, err = os.ReadFile(args[0])
		} else {
			input, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("error reading stylesheet: %w", err)
		}

		if showConflicts, _ := cmd.Flags().GetBool("conflicts"); showConflicts {
			for _, sel := range stylesheet.Conflicts(string(input)) {
				fmt.Fprintln(cmd.ErrOrStderr(), "overridden by base styles:", sel)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), converter().Convert(string(input)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().Bool("conflicts", false, "list selectors the base styles redefine on stderr")
}
