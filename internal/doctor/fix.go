package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
)

// Fix repairs every fixable issue and returns how many were fixed.
func Fix(ctx context.Context, c *ims.ConfigContext, issues []Issue) (int, error) {
	l := log.FromContext(ctx)
	fixed := 0

	for _, issue := range issues {
		if !issue.Fixable() {
			continue
		}

		switch issue.FixAction {
		case FixClear:
			local := issue.Location == ims.LocationLocal
			if err := c.SetConfigValue(ctx, issue.Key, nil, local); err != nil {
				return fixed, fmt.Errorf("clear %s in %s store: %w", issue.Key, issue.Location, err)
			}
			l.Debug("doctor cleared value", "key", issue.Key, "location", string(issue.Location))
		default:
			return fixed, fmt.Errorf("unknown fix action %q", issue.FixAction)
		}
		fixed++
	}
	return fixed, nil
}
