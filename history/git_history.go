package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/hookwright/copyright-hooks/history/contracts"
	"github.com/pterm/pterm"
)

// ErrNoHistory indicates that a file has no commits to examine, either because it
// is new, the repository has no commits yet, or it is not in a repository at all.
var ErrNoHistory = errors.New("no commit history")

// GitHistory infers file ages from the enclosing git repository.
type GitHistory struct {
	cache  *CacheManager
	logger *pterm.Logger
}

var _ contracts.IHistoryProvider = (*GitHistory)(nil)

// NewGitHistory creates a GitHistory. A nil cache disables caching.
func NewGitHistory(cache *CacheManager, logger *pterm.Logger) *GitHistory {
	if logger == nil {
		logger = &pterm.DefaultLogger
	}
	return &GitHistory{cache: cache, logger: logger}
}

// EarliestYear returns the committer year of the oldest commit that touched path.
func (g *GitHistory) EarliestYear(ctx context.Context, path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(abs), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return 0, fmt.Errorf("%w: %s is not in a git repository", ErrNoHistory, path)
		}
		return 0, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, fmt.Errorf("%w: repository has no commits", ErrNoHistory)
		}
		return 0, fmt.Errorf("get HEAD: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("get worktree: %w", err)
	}
	rel, err := filepath.Rel(worktree.Filesystem.Root(), abs)
	if err != nil {
		return 0, fmt.Errorf("failed to locate %s in the worktree: %w", path, err)
	}
	rel = filepath.ToSlash(rel)

	cacheKey := head.Hash().String() + ":" + rel
	if g.cache != nil {
		if year, found := g.cache.GetEarliestYear(cacheKey); found {
			g.logger.Trace("history cache hit", g.logger.Args("file", rel, "year", year))
			return year, nil
		}
	}

	year, err := earliestCommitYear(ctx, repo, head.Hash(), rel)
	if err != nil {
		return 0, err
	}

	if g.cache != nil {
		if err := g.cache.SetEarliestYear(cacheKey, year); err != nil {
			g.logger.Warn("failed to cache history", g.logger.Args("file", rel, "error", err))
		}
	}
	return year, nil
}

func earliestCommitYear(ctx context.Context, repo *gogit.Repository, from plumbing.Hash, rel string) (int, error) {
	commits, err := repo.Log(&gogit.LogOptions{From: from, FileName: &rel})
	if err != nil {
		return 0, fmt.Errorf("read log of %s: %w", rel, err)
	}
	defer commits.Close()

	earliest := 0
	err = commits.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		year := c.Committer.When.Year()
		if earliest == 0 || year < earliest {
			earliest = year
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk log of %s: %w", rel, err)
	}

	if earliest == 0 {
		return 0, fmt.Errorf("%w: %s has never been committed", ErrNoHistory, rel)
	}
	return earliest, nil
}
