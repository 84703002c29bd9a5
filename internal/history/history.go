// Package history remembers context switches per local store.
// This enables `imsctx use -` to return to the previously current context.
package history

import (
	"errors"
	"os"
	"slices"
	"time"

	"github.com/raphi011/imsctx/internal/storage"
)

// maxEntries bounds the number of local stores tracked.
const maxEntries = 100

// Entry records the last switch made in one local store.
type Entry struct {
	Store      string    `json:"store"` // local store file
	Previous   string    `json:"previous"`
	Current    string    `json:"current"`
	SwitchedAt time.Time `json:"switched_at"`
}

// History holds one entry per local store, most recent first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history from path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Find returns the entry for store.
func (h *History) Find(store string) (Entry, bool) {
	i := slices.IndexFunc(h.Entries, func(e Entry) bool { return e.Store == store })
	if i < 0 {
		return Entry{}, false
	}
	return h.Entries[i], true
}

// Record notes a switch from one context to another in store and moves the
// entry to the front. Switching to the context that is already current
// keeps the previous one.
func (h *History) Record(store, from, to string) {
	e, ok := h.Find(store)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool { return e.Store == store })

	if !ok || from != to {
		e = Entry{Store: store, Previous: from}
	}
	e.Current = to
	e.SwitchedAt = time.Now()

	h.Entries = append([]Entry{e}, h.Entries...)
	if len(h.Entries) > maxEntries {
		h.Entries = h.Entries[:maxEntries]
	}
}

// RecordSwitch loads the history file, records a switch and saves it.
// An empty path disables history.
func RecordSwitch(path, store, from, to string) error {
	if path == "" {
		return nil
	}
	h, err := Load(path)
	if err != nil {
		return err
	}
	h.Record(store, from, to)
	return h.Save(path)
}

// Previous returns the context that was current before the last switch in
// store, or "" if there is none.
func Previous(path, store string) (string, error) {
	if path == "" {
		return "", nil
	}
	h, err := Load(path)
	if err != nil {
		return "", err
	}
	e, _ := h.Find(store)
	return e.Previous, nil
}
