// Package ims manages named credential contexts stored in a two-tier
// (local, global) key-value configuration store.
//
// # Layout
//
// Every key lives below a fixed namespace built from [KeyNames]:
//
//	ims.config.current    name of the current context (always local)
//	ims.config.plugins    optional list of plugin identifiers
//	ims.contexts.<name>   context data, one mapping per context
//	ims.contexts.cli      the context reserved for the command line
//
// Segment names are configurable; the layout is not.
//
// # Layers
//
// [Manager] holds the rules that apply to any storage: an empty context
// name resolves to the current context, the current pointer is written to
// the local tier only, and plugin support is optional. It delegates to a
// [Backend], which only composes paths and talks to storage.
//
// [ConfigContext] is the Backend over a [Store]. It adds [ConfigContext.CLI]
// and [ConfigContext.SetCLI], the latter with shallow merge-on-write.
//
// # Concurrency
//
// SetCLI with merge is a read-modify-write. When the store implements
// [Locker] the sequence runs under the store lock; otherwise two concurrent
// callers can lose one of the updates.
package ims
