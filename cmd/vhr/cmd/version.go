/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is stamped by the build.
var Version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vhr version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("vhr " + Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
