/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"fmt"

	"github.com/gregriff/ytlc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the path of the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showDefault, _ := cmd.Flags().GetBool("default"); showDefault {
			cmd.OutOrStdout().Write(config.Default())
			return nil
		}
		path := viper.ConfigFileUsed()
		if path == "" {
			path = "(embedded defaults)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("default", false, "print the embedded default config instead")
}
