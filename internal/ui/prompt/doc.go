// Package prompt provides the interactive prompts of imsctx.
//
// Prompts render to stderr so stdout stays usable for piping.
//
//   - [Confirm]: yes/no confirmation, used before doctor fixes
//   - [Select]: pick a context from a filterable list
//   - [Suggest]: fuzzy "did you mean" candidates for an unknown name
package prompt
