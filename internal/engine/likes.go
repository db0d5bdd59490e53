package engine

import (
	"fmt"
	"sync"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

type likeKey struct {
	postID string
	userID uint
}

// LikeLedger owns the full set of like facts for the lifetime of the screen
// and derives per-post like count and liked-by-me state from it. The set is
// global, not scoped to the visible page: one full-table fetch at session
// start, refreshed only through explicit toggles. Posts shown outside that
// window live with a staleness window until the next LoadAll.
//
// Toggles are confirm-then-apply: local state changes only after the remote
// call succeeds, so no rollback protocol exists, at the cost of a visible
// latency window.
type LikeLedger struct {
	mu      sync.Mutex
	likes   map[likeKey]models.Like
	pending map[likeKey]struct{} // pairs with a toggle in flight

	likeRepository repositories.LikeRepository
	dispatcher     *NotificationDispatcher
}

// NewLikeLedger creates a new LikeLedger
func NewLikeLedger(likeRepo repositories.LikeRepository, dispatcher *NotificationDispatcher) *LikeLedger {
	return &LikeLedger{
		likes:          make(map[likeKey]models.Like),
		pending:        make(map[likeKey]struct{}),
		likeRepository: likeRepo,
		dispatcher:     dispatcher,
	}
}

// LoadAll fetches the entire like table and replaces the local set. Displayed
// like counts are only correct once this has completed.
func (l *LikeLedger) LoadAll() error {
	likes, err := l.likeRepository.GetAllLikes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	set := make(map[likeKey]models.Like, len(likes))
	for _, like := range likes {
		set[likeKey{postID: like.PostID, userID: like.UserID}] = like
	}

	l.mu.Lock()
	l.likes = set
	l.mu.Unlock()
	return nil
}

// Toggle flips the actor's like on the post. A like that exists is deleted,
// one that doesn't is inserted; the local set is updated only after the
// remote call succeeds. A toggle-on for someone else's post dispatches a like
// notification to the post's author; toggle-off never notifies.
//
// A second Toggle on the same pair while one is outstanding is rejected with
// ErrToggleInFlight so a rapid double-tap can never insert (or delete) twice.
func (l *LikeLedger) Toggle(post *FeedItem, actor *models.UserCompact) error {
	if actor == nil || actor.ID == 0 {
		return ErrNotAuthenticated
	}

	key := likeKey{postID: post.HexID(), userID: actor.ID}

	l.mu.Lock()
	if _, inFlight := l.pending[key]; inFlight {
		l.mu.Unlock()
		return ErrToggleInFlight
	}
	l.pending[key] = struct{}{}
	_, liked := l.likes[key]
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.pending, key)
		l.mu.Unlock()
	}()

	if liked {
		if err := l.likeRepository.DeleteLike(key.postID, key.userID); err != nil {
			return fmt.Errorf("%w: %v", ErrToggleFailed, err)
		}
		l.mu.Lock()
		delete(l.likes, key)
		l.mu.Unlock()
		return nil
	}

	like := models.Like{PostID: key.postID, UserID: key.userID}
	if err := l.likeRepository.CreateLike(&like); err != nil {
		return fmt.Errorf("%w: %v", ErrToggleFailed, err)
	}
	l.mu.Lock()
	l.likes[key] = like
	l.mu.Unlock()

	if post.AuthorID != actor.ID {
		l.dispatcher.Dispatch(fmt.Sprintf("%s liked your post", actor.Name), post.AuthorID, actor.ID)
	}
	return nil
}

// IsLiked reports whether the user likes the post, from local state only.
func (l *LikeLedger) IsLiked(postID string, userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.likes[likeKey{postID: postID, userID: userID}]
	return ok
}

// Count returns the number of like facts for the post, from local state only.
func (l *LikeLedger) Count(postID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key := range l.likes {
		if key.postID == postID {
			n++
		}
	}
	return n
}
