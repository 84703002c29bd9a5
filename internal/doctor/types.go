package doctor

import "github.com/raphi011/imsctx/internal/ims"

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryCurrent represents problems with the current context pointer.
	CategoryCurrent IssueCategory = "current"
	// CategoryContexts represents problems with stored contexts.
	CategoryContexts IssueCategory = "contexts"
	// CategoryPlugins represents problems with the plugin list.
	CategoryPlugins IssueCategory = "plugins"
)

// FixClear removes the offending value from its tier.
const FixClear = "clear"

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // config key or context name
	Description string        // human-readable description
	FixAction   string        // what --fix would do, empty if not fixable
	Category    IssueCategory // issue category
	Location    ims.Location  // tier the value lives in
}

// Fixable reports whether --fix can repair the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != ""
}

// Stats tracks counts over the checked store.
type Stats struct {
	Contexts      int // stored contexts
	ValidContexts int // contexts without issues
	Issues        int // total issues
	Fixable       int // issues --fix can repair
}
