package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "makerboard",
	Short: "Makerboard — project collaboration marketplace",
	Long:  "Makerboard is the backend for a project collaboration marketplace: makers register accounts, publish project listings with open roles, and browse the catalog with text, category, and skill filters.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/makerboard.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
