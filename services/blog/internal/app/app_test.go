package app

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"librarysite/pkg/domain"
	"librarysite/pkg/store"
)

func newTestApp(t *testing.T, s store.BlogStore) *App {
	t.Helper()
	a, err := New(Config{Store: s, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestSeedPostsCreatesPublishedDemoPosts(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore())
	created := a.SeedPosts()
	if len(created) != len(demoPosts) {
		t.Fatalf("created %d posts, want %d", len(created), len(demoPosts))
	}
	posts, err := a.PublishedPosts()
	if err != nil {
		t.Fatalf("published posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("published = %d, want 3", len(posts))
	}
}

type failingPostStore struct {
	*store.MemoryStore
	calls int
}

func (s *failingPostStore) CreatePost(p domain.Post) (domain.Post, error) {
	s.calls++
	if s.calls == 2 {
		return domain.Post{}, errors.New("disk full")
	}
	return s.MemoryStore.CreatePost(p)
}

func TestSeedPostsSkipsFailedInserts(t *testing.T) {
	s := &failingPostStore{MemoryStore: store.NewMemoryStore()}
	created := newTestApp(t, s).SeedPosts()
	if len(created) != 2 || s.calls != 3 {
		t.Fatalf("created=%d calls=%d, want 2 and 3", len(created), s.calls)
	}
}

func TestPublishedPostHidesDrafts(t *testing.T) {
	mem := store.NewMemoryStore()
	a := newTestApp(t, mem)
	draft := domain.NewPost("Draft", "wip")
	draft.IsPublished = false
	draft, err := mem.CreatePost(draft)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, ok, err := a.PublishedPost(draft.ID); err != nil || ok {
		t.Fatalf("draft should be hidden: ok=%v err=%v", ok, err)
	}
	if _, err := a.SetPublished(draft.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, ok, _ := a.PublishedPost(draft.ID); !ok {
		t.Fatalf("published post should be visible")
	}
	if _, err := a.SetPublished(9999, true); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
