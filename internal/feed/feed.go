// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed holds the client's current topic list. Research calls run for
// minutes and nothing stops a user from starting another while one is in
// flight; each call takes a generation number at start and only the result
// carrying the newest generation may install itself. A stale completion is
// dropped instead of overwriting fresher topics.
// See docs/ARCHITECTURE.md § Topic Feed.
package feed

import (
	"sync"

	"github.com/esosa/podcast-assistant/pkg/types"
)

// Saver persists topic feeds. *store.Store satisfies it.
type Saver interface {
	SaveTopicFeed([]types.Topic) error
	LoadTopicFeed() ([]types.Topic, error)
}

// Feed is the current topic list plus the generation counter guarding it.
type Feed struct {
	mu      sync.Mutex
	gen     uint64
	current []types.Topic
	saver   Saver
}

// New returns an empty feed backed by the given saver. A nil saver disables
// persistence.
func New(saver Saver) *Feed {
	return &Feed{saver: saver}
}

// Load populates the feed from persistence. Called once at startup; a
// missing or stale persisted feed leaves the feed empty.
func (f *Feed) Load() error {
	if f.saver == nil {
		return nil
	}
	topics, err := f.saver.LoadTopicFeed()
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.current = topics
	f.mu.Unlock()
	return nil
}

// Begin marks the start of a research call and returns its generation.
// Any generation issued earlier becomes stale immediately.
func (f *Feed) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	return f.gen
}

// Apply installs a completed extraction if gen is still current, replacing
// the whole topic list and persisting it. It reports whether the result was
// installed; a stale generation is a no-op and leaves both the in-memory and
// persisted feeds untouched.
func (f *Feed) Apply(gen uint64, topics []types.Topic) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return false, nil
	}
	f.current = topics
	if f.saver == nil {
		return true, nil
	}
	return true, f.saver.SaveTopicFeed(topics)
}

// Topics returns a copy of the current topic list.
func (f *Feed) Topics() []types.Topic {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Topic, len(f.current))
	copy(out, f.current)
	return out
}

// Topic returns the topic with the given id, if present.
func (f *Feed) Topic(id int) (types.Topic, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.current {
		if t.ID == id {
			return t, true
		}
	}
	return types.Topic{}, false
}
