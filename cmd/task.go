package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/adalundhe/aw/core/metadata"
	"github.com/adalundhe/aw/core/storage"
	"github.com/adalundhe/aw/core/worklog"
	"github.com/spf13/cobra"
)

var taskCategory string

var taskCmd = &cobra.Command{
	Use:   "task <description>",
	Short: "Record one completed unit of work",
	Long: `Record one completed unit of work into the local log. Project, branch,
and session metadata are derived automatically from the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := args[0]
		if description == "" {
			return fmt.Errorf("description must not be empty")
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}

		dbPath, err := storage.DBPath()
		if err != nil {
			return err
		}
		store, err := worklog.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		meta := metadata.Collect(cwd)
		_, err = store.Append(context.Background(), worklog.Entry{
			Description:      description,
			Category:         taskCategory,
			SessionID:        meta.SessionID,
			ProjectName:      meta.ProjectName,
			GitBranch:        meta.GitBranch,
			WorkingDirectory: meta.WorkingDirectory,
		})
		if err != nil {
			return err
		}

		if taskCategory != "" {
			fmt.Printf("Logged: %s [%s]\n", description, taskCategory)
		} else {
			fmt.Printf("Logged: %s\n", description)
		}
		return nil
	},
}

func init() {
	taskCmd.Flags().StringVarP(&taskCategory, "category", "c", "", "short label for the entry (open vocabulary)")
	rootCmd.AddCommand(taskCmd)
}
