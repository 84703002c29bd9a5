// Package doctor provides diagnostics and repairs for an imsctx store.
//
// The checks cover:
//
//   - Current pointer issues: a current context that names a context which
//     does not exist, or a pointer that is not a string.
//
//   - Context issues: context data that is not a mapping, and contexts named
//     like the current segment, which older layouts kept next to the
//     contexts.
//
//   - Plugin issues: a plugin list that is not a list of strings.
//
// Each tier (local, global) is checked on its own, so a fix clears exactly
// the tier the bad value lives in.
//
// # Usage
//
//	issues, stats, err := doctor.Check(ctx, cc)
//	err := doctor.Run(ctx, w, cc, false) // check and report
//	err := doctor.Run(ctx, w, cc, true)  // check, report and fix
package doctor
