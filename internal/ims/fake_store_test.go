package ims

import (
	"context"
	"errors"
	"strings"
)

// call records one store invocation.
type call struct {
	op    string // "get", "set", "reload", "lock"
	path  string
	loc   Location
	value any
	local bool
}

// fakeStore is an in-memory Store that records every call.
// Values are kept per tier; reads with LocationAny prefer local.
type fakeStore struct {
	local  map[string]any
	global map[string]any
	calls  []call
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		local:  make(map[string]any),
		global: make(map[string]any),
	}
}

func (s *fakeStore) Get(_ context.Context, path string, loc Location) (any, error) {
	s.calls = append(s.calls, call{op: "get", path: path, loc: loc})
	if s.getErr != nil {
		return nil, s.getErr
	}
	switch loc {
	case LocationLocal:
		return lookup(s.local, path), nil
	case LocationGlobal:
		return lookup(s.global, path), nil
	}
	if v := lookup(s.local, path); v != nil {
		return v, nil
	}
	return lookup(s.global, path), nil
}

func (s *fakeStore) Set(_ context.Context, path string, value any, local bool) error {
	s.calls = append(s.calls, call{op: "set", path: path, value: value, local: local})
	if s.setErr != nil {
		return s.setErr
	}
	if local {
		s.local[path] = value
	} else {
		s.global[path] = value
	}
	return nil
}

func (s *fakeStore) Reload(context.Context) error {
	s.calls = append(s.calls, call{op: "reload"})
	return nil
}

// ops returns the operation names in call order.
func (s *fakeStore) ops() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.op
	}
	return out
}

// sets returns the recorded set calls.
func (s *fakeStore) sets() []call {
	var out []call
	for _, c := range s.calls {
		if c.op == "set" {
			out = append(out, c)
		}
	}
	return out
}

// reset clears the call log.
func (s *fakeStore) reset() {
	s.calls = nil
}

// lookup resolves path in a flat map of full paths, assembling a mapping
// for parent paths the way a hierarchical store would.
func lookup(m map[string]any, path string) any {
	if v, ok := m[path]; ok {
		return v
	}
	children := make(map[string]any)
	prefix := path + "."
	for k, v := range m {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			head, _, _ := strings.Cut(rest, ".")
			children[head] = v
		}
	}
	if len(children) == 0 {
		return nil
	}
	return children
}

// lockingStore adds a Locker to fakeStore.
type lockingStore struct {
	*fakeStore
	locked   int
	unlocked int
	lockErr  error
}

func (s *lockingStore) Lock(context.Context) (func(), error) {
	s.calls = append(s.calls, call{op: "lock"})
	if s.lockErr != nil {
		return nil, s.lockErr
	}
	s.locked++
	return func() { s.unlocked++ }, nil
}

var errBackend = errors.New("backend down")
