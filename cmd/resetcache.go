package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/hookwright/copyright-hooks/constants/lipgloss"
	"github.com/hookwright/copyright-hooks/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newResetCacheCmd(env Environment) *cobra.Command {
	resetCacheCmd := &cobra.Command{
		Use:   "reset-cache",
		Short: "Reset the commit history cache",
		Long: `The 'reset-cache' command removes the cached earliest-commit years that the hooks keep
between runs. Entries are keyed by the HEAD commit, so a reset is only needed to reclaim disk space
or after the cache directory was corrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			stats, _ := cmd.Flags().GetBool("stats")
			olderThan, _ := cmd.Flags().GetDuration("older-than")

			rootDependencies, err := handleRootCommand(cmd, env)
			if err != nil {
				return err
			}
			return handleResetCacheCommand(rootDependencies, force, stats, olderThan)
		},
	}

	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")
	resetCacheCmd.Flags().Duration("older-than", 0, "Only remove entries older than this age, e.g. 720h")
	return resetCacheCmd
}

func handleResetCacheCommand(deps *RootDependencies, force bool, showStats bool, olderThan time.Duration) error {
	out := deps.Env.Stdout

	if deps.Cache == nil {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return nil
	}

	if showStats {
		cacheStats, err := deps.Cache.GetCacheStats()
		if err != nil {
			return fmt.Errorf("could not show statistics: %w", err)
		}

		var lines []string
		if dir, ok := cacheStats["cache_dir"].(string); ok {
			lines = append(lines, fmt.Sprintf("Cache Directory: %s", dir))
		}
		if files, ok := cacheStats["cache_files"].(int); ok {
			lines = append(lines, fmt.Sprintf("Cached Files: %d", files))
		}
		if size, ok := cacheStats["total_size"].(int64); ok {
			lines = append(lines, fmt.Sprintf("Total Size: %.2f KB", float64(size)/1024))
		}

		fmt.Fprintln(out, lipgloss.Info.Render("Cache Statistics:"))
		fmt.Fprintln(out, lipgloss.BoxStyle.Render(strings.Join(lines, "\n")))
		return nil
	}

	if !force {
		confirmed, err := utils.Confirm(bufio.NewReader(deps.Env.Stdin), out, "Are you sure you want to reset the history cache?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).
		WithWriter(deps.Env.Stderr)
	spinnerInstance, _ := spinner.Start("Resetting history cache...")
	stop := func() {
		if spinnerInstance != nil {
			_ = spinnerInstance.Stop()
		}
	}

	if olderThan > 0 {
		removed, err := deps.Cache.CleanExpiredCache(olderThan)
		stop()
		if err != nil {
			return fmt.Errorf("error cleaning cache: %w", err)
		}
		fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✓ Removed %d cache entries older than %s", removed, olderThan)))
		return nil
	}

	err := deps.Cache.ClearCache()
	stop()
	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render("✓ History cache has been successfully reset!"))
	return nil
}
