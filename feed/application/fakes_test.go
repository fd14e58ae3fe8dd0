package application

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dfryer1193/bghfeed/feed/domain"
)

type fakeSource struct {
	mu sync.Mutex

	posts         []domain.RemotePost
	postsErr      error
	categoryPosts map[int][]domain.RemotePost
	categoryErr   error
	detail        *domain.RemotePost
	detailErr     error
	categories    []domain.Category
	categoriesErr error

	postsCalls      int
	categoryCalls   int
	categoriesCalls int
	lastPageSize    int
}

func (f *fakeSource) FetchPosts(ctx context.Context, pageSize int) ([]domain.RemotePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postsCalls++
	f.lastPageSize = pageSize
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return f.posts, nil
}

func (f *fakeSource) FetchPostsByCategory(ctx context.Context, categoryID int, pageSize int) ([]domain.RemotePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	f.lastPageSize = pageSize
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categoryPosts[categoryID], nil
}

func (f *fakeSource) FetchPostByID(ctx context.Context, id int) (*domain.RemotePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeSource) FetchCategories(ctx context.Context, pageSize int) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoriesCalls++
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return slices.Clone(f.categories), nil
}

// memoryRepository is a PostRepository keeping one generation in memory.
type memoryRepository struct {
	mu sync.Mutex

	posts      []*domain.Post
	getErr     error
	replaceErr error

	getCalls     int
	replaceCalls int
}

func (r *memoryRepository) GetAll(ctx context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := slices.Clone(r.posts)
	slices.SortStableFunc(out, func(a, b *domain.Post) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	if out == nil {
		out = []*domain.Post{}
	}
	return out, nil
}

func (r *memoryRepository) ReplaceAll(ctx context.Context, posts []*domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceCalls++
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.posts = slices.Clone(posts)
	return nil
}

func remotePost(id int, date, title string) domain.RemotePost {
	return domain.RemotePost{
		ID:      id,
		Date:    date,
		Title:   domain.Rendered{Rendered: title},
		Excerpt: &domain.Rendered{Rendered: "<p>Excerpt of " + title + "</p>"},
	}
}

func postIDs(posts []*domain.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
