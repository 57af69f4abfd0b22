package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/adalundhe/aw/core/config"
	"github.com/adalundhe/aw/core/generate"
	"github.com/adalundhe/aw/core/storage"
	"github.com/adalundhe/aw/core/summary"
	"github.com/adalundhe/aw/core/worklog"
	"github.com/spf13/cobra"
)

var (
	summaryDays     int
	summaryCategory string
	summaryProject  string
	summaryJSON     bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a natural-language summary of recent work",
	RunE: func(cmd *cobra.Command, args []string) error {
		if summaryDays <= 0 {
			return fmt.Errorf("--days must be positive, got %d", summaryDays)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		provider, err := generate.New(cfg.Generation.Provider, generate.Options{Model: cfg.Generation.Model})
		if err != nil {
			return err
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

		result, err := summary.New(store, provider).Summarize(context.Background(), summary.Options{
			DaysBack:    summaryDays,
			Category:    summaryCategory,
			ProjectName: summaryProject,
		})
		if err != nil {
			if summaryJSON {
				// In JSON mode the error is part of the payload, not a
				// separate error line; the exit code still signals failure.
				_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
				os.Exit(1)
			}
			return err
		}

		if summaryJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		fmt.Println(result.Text)
		fmt.Printf("\n(%d entries, last %d days)\n", result.EntryCount, result.DaysBack)
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryDays, "days", 7, "how many days back to include")
	summaryCmd.Flags().StringVar(&summaryCategory, "category", "", "only include entries with this category")
	summaryCmd.Flags().StringVar(&summaryProject, "project", "", "only include entries for this project")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "emit raw JSON instead of formatted text")
	rootCmd.AddCommand(summaryCmd)
}
