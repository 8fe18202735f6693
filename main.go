/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package main

import (
	"os"

	"github.com/gregriff/ytlc/cmd"
	"github.com/spf13/viper"
)

func main() {
	if len(os.Getenv("DEBUG")) > 0 {
		viper.Set("log-level", "debug")
	}
	cmd.Execute()
}
