package engine

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

// CommentThread owns the ordered comment list for exactly one post: the one
// currently open in the detail session. Switching selection discards the
// whole thread; a thread is never reused across posts.
type CommentThread struct {
	mu       sync.Mutex
	post     FeedItem
	comments []models.ThreadComment
	draft    string // the comment input buffer

	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	dispatcher        *NotificationDispatcher
}

func newCommentThread(post FeedItem, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, dispatcher *NotificationDispatcher) *CommentThread {
	return &CommentThread{
		post:              post,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		dispatcher:        dispatcher,
	}
}

// Load fetches the full thread for the bound post, oldest first, embeds the
// authors, and replaces any prior contents. On failure the prior contents
// stay.
func (t *CommentThread) Load() error {
	comments, err := t.commentRepository.GetCommentsByPostID(t.post.HexID())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	thread, err := embedCommentAuthors(comments, t.userRepository)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	t.mu.Lock()
	t.comments = thread
	t.mu.Unlock()
	return nil
}

// Comments returns a copy of the current thread contents.
func (t *CommentThread) Comments() []models.ThreadComment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.ThreadComment, len(t.comments))
	copy(out, t.comments)
	return out
}

// SetDraft stores the comment input buffer as the user types.
func (t *CommentThread) SetDraft(text string) {
	t.mu.Lock()
	t.draft = text
	t.mu.Unlock()
}

// Draft returns the current comment input buffer.
func (t *CommentThread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// Submit inserts the drafted comment on the bound post. On success the draft
// is cleared, the full thread is re-fetched (re-fetch rather than local
// append keeps author embedding consistent with the remote projection), and a
// comment notification goes to the post's author unless the actor is that
// author. On insert failure the draft and the thread are left untouched.
func (t *CommentThread) Submit(actor *models.UserCompact) error {
	t.mu.Lock()
	text := strings.TrimSpace(t.draft)
	t.mu.Unlock()

	if text == "" {
		return ErrEmptyComment
	}
	if actor == nil || actor.ID == 0 {
		return ErrNotAuthenticated
	}

	comment := models.Comment{
		PostID: t.post.HexID(),
		UserID: actor.ID,
		Text:   text,
	}
	if err := t.commentRepository.CreateComment(&comment); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	t.mu.Lock()
	t.draft = ""
	t.mu.Unlock()

	// The comment itself is persisted; a failed reload only leaves the
	// visible thread one entry behind.
	if err := t.Load(); err != nil {
		log.Printf("Failed to reload thread for post %s after submit: %v", t.post.HexID(), err)
	}

	if t.post.AuthorID != actor.ID {
		t.dispatcher.Dispatch(fmt.Sprintf("%s commented on your post", actor.Name), t.post.AuthorID, actor.ID)
	}
	return nil
}

// embedCommentAuthors resolves comment authors in one batched user fetch.
// Comments whose author row is missing keep a zero author.
func embedCommentAuthors(comments []models.Comment, userRepo repositories.UserRepository) ([]models.ThreadComment, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
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

	thread := make([]models.ThreadComment, len(comments))
	for i, c := range comments {
		thread[i] = models.ThreadComment{Comment: c, Author: authors[c.UserID]}
	}
	return thread, nil
}
