// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"errors"
	"testing"

	"github.com/esosa/podcast-assistant/pkg/types"
)

type memSaver struct {
	saved   []types.Topic
	writes  int
	loadErr error
	saveErr error
}

func (m *memSaver) SaveTopicFeed(topics []types.Topic) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = topics
	m.writes++
	return nil
}

func (m *memSaver) LoadTopicFeed() ([]types.Topic, error) {
	return m.saved, m.loadErr
}

func topicList(titles ...string) []types.Topic {
	out := make([]types.Topic, len(titles))
	for i, title := range titles {
		out[i] = types.Topic{ID: i, Title: title}
	}
	return out
}

func TestApplyCurrentGeneration(t *testing.T) {
	saver := &memSaver{}
	f := New(saver)

	gen := f.Begin()
	applied, err := f.Apply(gen, topicList("A", "B"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !applied {
		t.Fatal("current generation should apply")
	}
	if got := f.Topics(); len(got) != 2 || got[0].Title != "A" {
		t.Errorf("Topics = %+v", got)
	}
	if saver.writes != 1 {
		t.Errorf("writes = %d, want 1", saver.writes)
	}
}

func TestStaleGenerationDropped(t *testing.T) {
	saver := &memSaver{}
	f := New(saver)

	slow := f.Begin()
	fast := f.Begin()

	applied, err := f.Apply(fast, topicList("fresh"))
	if err != nil || !applied {
		t.Fatalf("fresh apply: applied=%v err=%v", applied, err)
	}

	// The older call completes after the newer one: it must not win.
	applied, err = f.Apply(slow, topicList("stale"))
	if err != nil {
		t.Fatalf("stale apply: %v", err)
	}
	if applied {
		t.Fatal("stale generation must not apply")
	}
	if got := f.Topics(); len(got) != 1 || got[0].Title != "fresh" {
		t.Errorf("Topics = %+v, want the fresh list", got)
	}
	if saver.writes != 1 {
		t.Errorf("writes = %d, stale apply must not persist", saver.writes)
	}
}

func TestApplyReplacesWholeList(t *testing.T) {
	f := New(nil)

	gen := f.Begin()
	f.Apply(gen, topicList("A", "B", "C"))

	gen = f.Begin()
	f.Apply(gen, topicList("D"))

	if got := f.Topics(); len(got) != 1 || got[0].Title != "D" {
		t.Errorf("Topics = %+v, want only the new list", got)
	}
}

func TestLoadPopulatesFromSaver(t *testing.T) {
	saver := &memSaver{saved: topicList("persisted")}
	f := New(saver)

	if err := f.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := f.Topics(); len(got) != 1 || got[0].Title != "persisted" {
		t.Errorf("Topics = %+v", got)
	}
}

func TestLoadError(t *testing.T) {
	saver := &memSaver{loadErr: errors.New("disk gone")}
	f := New(saver)
	if err := f.Load(); err == nil {
		t.Fatal("Load should propagate saver errors")
	}
}

func TestSaveErrorSurfacesButInstalls(t *testing.T) {
	saver := &memSaver{saveErr: errors.New("disk full")}
	f := New(saver)

	gen := f.Begin()
	applied, err := f.Apply(gen, topicList("A"))
	if !applied {
		t.Fatal("result should install in memory even when persistence fails")
	}
	if err == nil {
		t.Fatal("persistence failure should be reported")
	}
}

func TestTopicByID(t *testing.T) {
	f := New(nil)
	gen := f.Begin()
	f.Apply(gen, topicList("A", "B"))

	got, ok := f.Topic(1)
	if !ok || got.Title != "B" {
		t.Errorf("Topic(1) = %+v, %v", got, ok)
	}
	if _, ok := f.Topic(5); ok {
		t.Error("Topic(5) should not exist")
	}
}

func TestTopicsReturnsCopy(t *testing.T) {
	f := New(nil)
	gen := f.Begin()
	f.Apply(gen, topicList("A"))

	got := f.Topics()
	got[0].Title = "mutated"

	if fresh := f.Topics(); fresh[0].Title != "A" {
		t.Error("mutating the returned slice must not affect the feed")
	}
}
