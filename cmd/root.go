// Package cmd provides CLI commands for the aw work log.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aw",
	Short: "aw - a local work log for AI coding agents",
	Long: `aw records discrete units of completed work into a local, queryable log.
Agents (or their operators) log entries as tasks finish, then review or
summarize them over a time window.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
