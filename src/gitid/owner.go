// Package gitid resolves the local git identity.
package gitid

import (
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// DefaultOwner returns the git user.name for the repository enclosing
// rootDir, falling back to the global git config, then to "unknown".
// It never errors: the value only feeds the generated site footer.
func DefaultOwner(rootDir string) string {
	if repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil && cfg.User.Name != "" {
			return cfg.User.Name
		}
	}
	if cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil && cfg.User.Name != "" {
		return cfg.User.Name
	}
	return "unknown"
}
