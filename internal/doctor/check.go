package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
)

var tiers = []ims.Location{ims.LocationLocal, ims.LocationGlobal}

// Check inspects the store behind c and returns the issues found.
func Check(ctx context.Context, c *ims.ConfigContext) ([]Issue, Stats, error) {
	var issues []Issue
	var stats Stats

	for _, loc := range tiers {
		found, err := checkCurrent(ctx, c, loc)
		if err != nil {
			return nil, stats, err
		}
		issues = append(issues, found...)

		found, err = checkPlugins(ctx, c, loc)
		if err != nil {
			return nil, stats, err
		}
		issues = append(issues, found...)
	}

	found, contexts, err := checkContexts(ctx, c)
	if err != nil {
		return nil, stats, err
	}
	issues = append(issues, found...)

	stats.Contexts = contexts
	stats.ValidContexts = contexts - len(found)
	stats.Issues = len(issues)
	for _, issue := range issues {
		if issue.Fixable() {
			stats.Fixable++
		}
	}

	log.FromContext(ctx).Debug("doctor check done", "issues", stats.Issues, "contexts", stats.Contexts)
	return issues, stats, nil
}

// checkCurrent validates the current pointer stored in one tier.
func checkCurrent(ctx context.Context, c *ims.ConfigContext, loc ims.Location) ([]Issue, error) {
	keys := c.KeyNames()
	v, err := c.Store().Get(ctx, keys.ConfigPath(keys.Current), loc)
	if err != nil {
		return nil, err
	}

	switch name := v.(type) {
	case nil:
		return nil, nil
	case string:
		if name == "" {
			return nil, nil
		}
		data, err := c.Store().Get(ctx, keys.ContextPath(name), ims.LocationAny)
		if err != nil {
			return nil, err
		}
		if data != nil {
			return nil, nil
		}
		return []Issue{{
			Key:         keys.Current,
			Description: fmt.Sprintf("current context %q does not exist", name),
			FixAction:   FixClear,
			Category:    CategoryCurrent,
			Location:    loc,
		}}, nil
	default:
		return []Issue{{
			Key:         keys.Current,
			Description: fmt.Sprintf("current context is a %T, not a name", v),
			FixAction:   FixClear,
			Category:    CategoryCurrent,
			Location:    loc,
		}}, nil
	}
}

// checkPlugins validates the plugin list stored in one tier.
func checkPlugins(ctx context.Context, c *ims.ConfigContext, loc ims.Location) ([]Issue, error) {
	keys := c.KeyNames()
	v, err := c.Store().Get(ctx, keys.ConfigPath(keys.Plugins), loc)
	if err != nil {
		return nil, err
	}
	if _, err := ims.ParsePlugins(v); err == nil {
		return nil, nil
	}
	return []Issue{{
		Key:         keys.Plugins,
		Description: fmt.Sprintf("plugin list is a %T, not a list of names", v),
		FixAction:   FixClear,
		Category:    CategoryPlugins,
		Location:    loc,
	}}, nil
}

// checkContexts validates every stored context in the merged view and
// returns the issues along with the number of contexts.
func checkContexts(ctx context.Context, c *ims.ConfigContext) ([]Issue, int, error) {
	names, err := c.ContextKeys(ctx)
	if err != nil {
		return nil, 0, err
	}

	current := c.KeyNames().Current
	var issues []Issue
	for _, name := range names {
		if name == current {
			issues = append(issues, Issue{
				Key:         name,
				Description: fmt.Sprintf("context name equals the %q key; tools that keep the current pointer under contexts will misread it", current),
				Category:    CategoryContexts,
			})
			continue
		}

		data, err := c.ContextValue(ctx, name)
		if err != nil {
			return nil, 0, err
		}
		if _, ok := data.(map[string]any); !ok {
			issues = append(issues, Issue{
				Key:         name,
				Description: fmt.Sprintf("context data is a %T, not a mapping", data),
				Category:    CategoryContexts,
			})
		}
	}
	return issues, len(names), nil
}
