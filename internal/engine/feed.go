package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

// FeedPageSize caps the visible feed at a single fixed page. There is no
// cursor: "load more" is a documented limitation of this engine.
const FeedPageSize = 20

// FeedItem is a post with its author embedded, as held in the visible list.
type FeedItem struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// FeedStore owns the ordered list of visible posts and drives the initial
// page fetch. Only FeedStore mutates the list.
type FeedStore struct {
	mu    sync.Mutex
	posts []FeedItem

	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedStore creates a new FeedStore
func NewFeedStore(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedStore {
	return &FeedStore{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// Load fetches the newest page of posts, creation time descending, resolves
// their authors, and replaces the entire visible list. On any failure the
// prior list is left untouched; Load is idempotent and may simply be called
// again.
func (s *FeedStore) Load(ctx context.Context) error {
	posts, err := s.postRepository.GetLatestPosts(ctx, FeedPageSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	items, err := embedAuthors(posts, s.userRepository)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	s.mu.Lock()
	s.posts = items
	s.mu.Unlock()
	return nil
}

// Posts returns a copy of the current visible list.
func (s *FeedStore) Posts() []FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FeedItem, len(s.posts))
	copy(out, s.posts)
	return out
}

// embedAuthors resolves the posts' authors in one batched user fetch and
// pairs each post with its author projection. Posts whose author row is
// missing keep a zero author rather than being dropped.
func embedAuthors(posts []models.Post, userRepo repositories.UserRepository) ([]FeedItem, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}

	users, err := userRepo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		authors[u.ID] = u.ToCompact()
	}

	items := make([]FeedItem, len(posts))
	for i, p := range posts {
		items[i] = FeedItem{Post: p, Author: authors[p.AuthorID]}
	}
	return items, nil
}
