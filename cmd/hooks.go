package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Payloads for host tool hook mechanisms",
}

// remindPayload is the fixed response for a prompt-submission hook. It is a
// pure function of no input; the host tool injects additionalContext into
// the agent's context.
var remindPayload = map[string]any{
	"hookSpecificOutput": map[string]any{
		"hookEventName": "UserPromptSubmit",
		"additionalContext": "Reminder: when you complete a discrete unit of work, " +
			"record it with `aw task \"<description>\" --category <category>`.",
	},
}

var hooksRemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print the prompt-submission reminder payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		return json.NewEncoder(os.Stdout).Encode(remindPayload)
	},
}

func init() {
	hooksCmd.AddCommand(hooksRemindCmd)
	rootCmd.AddCommand(hooksCmd)
}
