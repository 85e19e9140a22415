package app

import "librarysite/pkg/domain"

var demoPosts = []struct {
	Title   string
	Content string
}{
	{
		Title: "My first blog post",
		Content: `Welcome to my blog! This is my first post, where I share my plans.

I will write about:
* Django development
* Web technologies
* Programming in general

Stay tuned!`,
	},
	{
		Title: "Learning Django: templates and tags",
		Content: `In this post I talk about Django templates.

**Django templates** separate logic from presentation.

The main tags:
1. {% block %} - for inheritance
2. {% for %} - for loops
3. {% if %} - for conditions
4. {% url %} - for building URLs`,
	},
	{
		Title: "Redirects in Django",
		Content: `Redirects matter for:
- Sending users elsewhere
- Changing URL structure
- Temporarily moved pages

Use redirect() or HttpResponseRedirect.`,
	},
}

// SeedPosts inserts the demo posts. Each insert is independent; failures are
// logged and skipped. It returns the posts that were created.
func (a *App) SeedPosts() []domain.Post {
	created := make([]domain.Post, 0, len(demoPosts))
	for _, p := range demoPosts {
		post, err := a.store.CreatePost(domain.NewPost(p.Title, p.Content))
		if err != nil {
			a.logger.Warn("seed post skipped", "title", p.Title, "err", err)
			continue
		}
		a.logger.Info("seed post created", "id", post.ID, "title", post.Title)
		created = append(created, post)
	}
	return created
}
