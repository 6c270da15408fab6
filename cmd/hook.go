package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright"
	"github.com/hookwright/copyright-hooks/copyright/models"
	"github.com/hookwright/copyright-hooks/utils"
)

// hookOptions are the per-run settings shared by both hooks.
type hookOptions struct {
	name          string
	format        string
	insertMissing bool
}

// runHook reconciles every file. Arguments and file types are all checked before
// the first file is touched. A failure on one file does not stop the others.
func runHook(ctx context.Context, deps *RootDependencies, files []string, opts hookOptions) error {
	files, err := utils.ResolveFiles(files)
	if err != nil {
		return err
	}
	for _, file := range files {
		if _, err := comment_markers.Lookup(file); err != nil {
			return err
		}
	}

	cfg := deps.Config
	cfg.ApplyFlags(opts.name, opts.format)
	if err := cfg.Validate(); err != nil {
		return err
	}

	gitOps := utils.NewGitOperations(deps.Cwd)
	resolveName := sync.OnceValues(gitOps.UserName)

	reconciler := copyright.NewReconciler(deps.History, deps.Now, deps.Logger)

	var errs []error
	modified := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		outcome, err := reconciler.Reconcile(ctx, file, copyright.Options{
			Name:          cfg.Name,
			ResolveName:   resolveName,
			Format:        cfg.FormatFor(comment_markers.Tags(file)),
			InsertMissing: opts.insertMissing,
		})
		if err != nil {
			deps.Logger.Error("failed to process file", deps.Logger.Args("file", file, "error", err.Error()))
			errs = append(errs, err)
			continue
		}

		if !outcome.Changed() {
			continue
		}
		modified++
		if outcome.Kind == models.Inserted {
			if err := deps.Output.Inserted(outcome.Path, outcome.NewText); err != nil {
				errs = append(errs, fmt.Errorf("file %s: %w", outcome.Path, err))
			}
			continue
		}
		deps.Output.Updated(outcome.Path, outcome.OldText, outcome.NewText)
	}

	deps.Logger.Debug("hook finished", deps.Logger.Args("files", len(files), "modified", modified, "failed", len(errs)))
	if deps.Cache != nil {
		perf := deps.Cache.GetPerformanceStats()
		deps.Logger.Debug("history cache", deps.Logger.Args(
			"hits", perf["cache_hits"],
			"misses", perf["cache_misses"],
			"hit_rate", fmt.Sprintf("%.1f%%", perf["hit_rate_percent"]),
		))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files could not be processed: %w", len(errs), len(files), errors.Join(errs...))
	}
	if modified > 0 {
		return ErrFilesModified
	}
	return nil
}
