package internal

import (
	"context"
	"fmt"
	"os"
)

// BuildChangelog runs the fetch, group and render stages and returns the
// rendered changelog section for the given release version.
func BuildChangelog(ctx context.Context, cfg Config, version string, fetcher Fetcher) (string, error) {
	items, err := fetcher.Fetch(ctx)
	if err != nil {
		return "", err
	}
	grouped := Group(
		items,
		cfg.GroupConfig,
		cfg.ExcludeLabels,
		cfg.IncludeUnlabeledChanges,
		cfg.UnlabeledGroupTitle,
	)
	return Render(version, cfg.HeaderPrefix, grouped, cfg.FileFormat()), nil
}

// PrependToFile writes the rendered section at the top of the changelog file,
// keeping the existing content below a blank-line separator. A missing file
// is created.
func PrependToFile(path, section string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not read changelog file %q: %w", path, err)
	}

	content := section
	if len(existing) > 0 {
		content = section + "\n\n" + string(existing)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write changelog file %q: %w", path, err)
	}
	return nil
}
