package app

import (
	"errors"
	"fmt"
	"log/slog"

	"librarysite/pkg/domain"
	"librarysite/pkg/store"
)

// Config wires the blog core.
type Config struct {
	Store  store.BlogStore
	Logger *slog.Logger
}

// App serves posts and products from a BlogStore.
type App struct {
	store  store.BlogStore
	logger *slog.Logger
}

func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("blog: store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{store: cfg.Store, logger: logger}, nil
}

// PublishedPosts lists published posts, newest first.
func (a *App) PublishedPosts() ([]domain.Post, error) {
	published := true
	return a.store.ListPosts(store.PostFilter{Published: &published})
}

// PublishedPost returns a post only if it exists and is published.
func (a *App) PublishedPost(id int64) (domain.Post, bool, error) {
	post, ok, err := a.store.GetPost(id)
	if err != nil || !ok || !post.IsPublished {
		return domain.Post{}, false, err
	}
	return post, true, nil
}

// AdminPosts lists every post, optionally filtered by search text and flag.
func (a *App) AdminPosts(search string, published *bool) ([]domain.Post, error) {
	return a.store.ListPosts(store.PostFilter{Search: search, Published: published})
}

func (a *App) Products(search string) ([]domain.Product, error) {
	return a.store.ListProducts(search)
}

// SetPublished flips the published flag, refreshing the post's update time.
func (a *App) SetPublished(id int64, published bool) (domain.Post, error) {
	post, ok, err := a.store.GetPost(id)
	if err != nil {
		return domain.Post{}, err
	}
	if !ok {
		return domain.Post{}, fmt.Errorf("%w: post %d", store.ErrNotFound, id)
	}
	post.IsPublished = published
	return a.store.SavePost(post)
}
