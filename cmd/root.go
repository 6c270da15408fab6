package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hookwright/copyright-hooks/config"
	"github.com/hookwright/copyright-hooks/constants/lipgloss"
	"github.com/hookwright/copyright-hooks/history"
	"github.com/hookwright/copyright-hooks/history/contracts"
	"github.com/hookwright/copyright-hooks/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ErrFilesModified signals that at least one file was rewritten. Pre-commit
// treats the resulting non-zero exit as a failed hook so the changes get staged.
var ErrFilesModified = errors.New("files were modified")

// Environment holds the process level collaborators of the commands. Zero
// fields fall back to the real implementations.
type Environment struct {
	Now      func() time.Time
	History  contracts.IHistoryProvider
	CacheDir string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

func (e Environment) withDefaults() Environment {
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Stdin == nil {
		e.Stdin = os.Stdin
	}
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	return e
}

// RootDependencies is built once per command invocation from the persistent flags.
type RootDependencies struct {
	Cwd     string
	Config  *config.Config
	Logger  *pterm.Logger
	Cache   *history.CacheManager
	History contracts.IHistoryProvider
	Output  *utils.OutputRenderer
	Now     func() time.Time
	Env     Environment
}

// NewRootCmd assembles the command tree.
func NewRootCmd(env Environment) *cobra.Command {
	env = env.withDefaults()

	rootCmd := &cobra.Command{
		Use:   "copyright-hooks",
		Short: "Pre-commit hooks that keep copyright notices present and up to date",
		Long: `copyright-hooks checks source files for a copyright notice in a comment.
'add-copyright' inserts a notice where one is missing and 'update-copyright' extends the
year range of existing notices so they cover the file's commit history up to the current year.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(env.Stdin)
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a configuration file (YAML, JSON or pyproject.toml).")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug diagnostics to stderr.")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Do not read or write the commit history cache.")

	rootCmd.AddCommand(
		newAddCopyrightCmd(env),
		newUpdateCopyrightCmd(env),
		newResetCacheCmd(env),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return Run(ctx, Environment{}, os.Args[1:])
}

// Run executes args against a fresh command tree. It returns 1 when files were
// modified or anything failed, and 0 otherwise.
func Run(ctx context.Context, env Environment, args []string) int {
	env = env.withDefaults()

	rootCmd := NewRootCmd(env)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFilesModified):
		return 1
	default:
		fmt.Fprintln(env.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
		return 1
	}
}

func handleRootCommand(cmd *cobra.Command, env Environment) (*RootDependencies, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	logger := utils.NewLogger(env.Stderr, verbose)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadHookConfig(configPath, cwd)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Debug("found config file", logger.Args("path", cfg.File))
	}

	var cache *history.CacheManager
	if !noCache {
		cache, err = history.NewCacheManager(env.CacheDir)
		if err != nil {
			logger.Warn("history cache disabled", logger.Args("error", err.Error()))
			cache = nil
		}
	}

	historyProvider := env.History
	if historyProvider == nil {
		historyProvider = history.NewGitHistory(cache, logger)
	}

	return &RootDependencies{
		Cwd:     cwd,
		Config:  cfg,
		Logger:  logger,
		Cache:   cache,
		History: historyProvider,
		Output:  utils.NewOutputRenderer(env.Stdout, utils.DefaultTheme),
		Now:     env.Now,
		Env:     env,
	}, nil
}
