package cmd

import (
	"fmt"
	"sort"

	"github.com/adalundhe/aw/core/harness"
	"github.com/spf13/cobra"
)

var (
	installGlobal  bool
	installHarness string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install work-log instructions into detected AI coding tools",
	Long: `Install usage instructions into the configuration of every detected AI
coding tool, or into one named harness. Installation is idempotent: marker
blocks are replaced in place and existing settings entries are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := harness.NewRegistry()
		if err != nil {
			return err
		}
		results := registry.InstallAuto(installGlobal, installHarness)
		printResults(results)
		if harness.AnyFailed(results) {
			return fmt.Errorf("one or more install actions failed")
		}
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove previously installed work-log instructions",
	Long: `Remove everything aw added to tool configurations, leaving surrounding
user content untouched. Uninstalling twice is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := harness.NewRegistry()
		if err != nil {
			return err
		}
		results := registry.UninstallAuto(installGlobal, installHarness)
		printResults(results)
		if harness.AnyFailed(results) {
			return fmt.Errorf("one or more uninstall actions failed")
		}
		return nil
	},
}

// printResults emits one block of result lines per harness, in stable order.
func printResults(results map[string][]harness.Result) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s:\n", name)
		for _, r := range results[name] {
			fmt.Printf("  %s %s\n", resultMark(r), r.Message)
		}
	}
}

func resultMark(r harness.Result) string {
	switch {
	case !r.Success:
		return "✗"
	case r.Skipped:
		return "-"
	default:
		return "✓"
	}
}

func init() {
	for _, c := range []*cobra.Command{installCmd, uninstallCmd} {
		c.Flags().BoolVar(&installGlobal, "global", false, "target global tool configuration instead of the project")
		c.Flags().StringVar(&installHarness, "harness", "", "target one harness by name (claude, cursor, codex, markdown)")
	}
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}
