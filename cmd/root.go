/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gregriff/ytlc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytlc",
	Short: "A YouTube live chat overlay simulator",
	Long: `ytlc simulates a YouTube live chat feed so chat overlay CSS can be designed without a live stream.
It generates owner, moderator, member and viewer chats, super chats, memberships and stickers, rewrites
YouTube's chat selectors onto the simulator markup, and previews the result in the terminal or a browser.

Keybinds (run):
- Random Chat : space
- Owner/Mod/Member/Viewer : 1,2,3,4
- Super Chat / Next Tier : s / S
- Auto Mode : a
- CSS Editor : e (ctrl+s save, esc leave)
- Help : ?
- Quit : q, ctrl+c
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.InitConfig(configFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/ytlc/ytlc.toml)")

	rootCmd.PersistentFlags().String("database", "", "sqlite database holding the saved stylesheet (default is $XDG_DATA_HOME/ytlc/ytlc.db)")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetDefault("log-level", "info")

	rootCmd.PersistentFlags().Bool("base-first", false, "emit the simulator base styles before the user stylesheet so user rules win")
	viper.BindPFlag("base-first", rootCmd.PersistentFlags().Lookup("base-first"))
	viper.SetDefault("base-first", false)
}
