// Package site post-processes the generated static site.
package site

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoHeadMarker signals the generated entry page has no closing head
// tag to anchor the redirect on. A silently missing redirect would ship
// a broken landing page, so this aborts the run.
var ErrNoHeadMarker = errors.New("no </head> marker in generated entry page")

// InjectRedirect inserts a client-side meta refresh to {siteURL}/manual/
// immediately before the final </head> of the entry page, leaving every
// other byte untouched.
func InjectRedirect(indexPath, siteURL string) error {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("reading entry page: %w", err)
	}

	out, err := WithRedirect(data, siteURL)
	if err != nil {
		return fmt.Errorf("%s: %w", indexPath, err)
	}
	return os.WriteFile(indexPath, out, 0o644)
}

// WithRedirect returns the page content with the redirect tag inserted.
func WithRedirect(page []byte, siteURL string) ([]byte, error) {
	const marker = "</head>"

	content := string(page)
	idx := strings.LastIndex(content, marker)
	if idx < 0 {
		return nil, ErrNoHeadMarker
	}

	tag := fmt.Sprintf(`<meta http-equiv="refresh" content="0; url=%s/manual/">`,
		strings.TrimRight(siteURL, "/"))
	return []byte(content[:idx] + tag + content[idx:]), nil
}
