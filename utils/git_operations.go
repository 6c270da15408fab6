package utils

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// ErrGitUserNotConfigured is returned when no git user.name can be found.
var ErrGitUserNotConfigured = errors.New("the git username is not configured")

// GitOperations handles git-related operations
type GitOperations struct {
	workingDir string
}

// NewGitOperations creates a new GitOperations instance
func NewGitOperations(workingDir string) *GitOperations {
	return &GitOperations{workingDir: workingDir}
}

// UserName returns the configured user.name. Repository config takes precedence
// over the global config, and outside a repository only the global config is read.
func (g *GitOperations) UserName() (string, error) {
	cfg, err := g.userConfig()
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(cfg.User.Name)
	if name == "" {
		return "", ErrGitUserNotConfigured
	}
	return name, nil
}

func (g *GitOperations) userConfig() (*config.Config, error) {
	repo, err := g.open()
	if err != nil {
		if !errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("failed to open git repository: %w", err)
		}
		cfg, err := config.LoadConfig(config.GlobalScope)
		if err != nil {
			return nil, fmt.Errorf("failed to read git config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	return cfg, nil
}

func (g *GitOperations) open() (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(g.workingDir, &gogit.PlainOpenOptions{DetectDotGit: true})
}
