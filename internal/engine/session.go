package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

// SessionState is the detail view's lifecycle state.
type SessionState string

const (
	// StateClosed means no post is selected.
	StateClosed SessionState = "closed"
	// StateSelecting means a post is selected but its detail has not
	// resolved yet (or its fetch failed and may be retried).
	StateSelecting SessionState = "selecting"
	// StateOpen means the detail is resolved and the comment thread is
	// valid.
	StateOpen SessionState = "open"
)

// PostDetailSession coordinates selecting a post, fetching its full detail,
// and opening and closing the comment thread view. At most one post is
// selected at any time; the thread is valid only while the session is open.
//
// In-flight fetches are never cancelled. Instead every mutation bumps a
// generation counter and a resolving fetch re-checks it before applying, so a
// late response for a superseded selection is discarded.
type PostDetailSession struct {
	mu      sync.Mutex
	state   SessionState
	gen     uint64
	postID  string
	detail  *FeedItem
	loadErr error // sticky detail-fetch error while Selecting
	thread  *CommentThread

	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	dispatcher        *NotificationDispatcher
}

// NewPostDetailSession creates a new PostDetailSession in the closed state
func NewPostDetailSession(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	dispatcher *NotificationDispatcher,
) *PostDetailSession {
	return &PostDetailSession{
		state:             StateClosed,
		postRepository:    postRepo,
		userRepository:    userRepo,
		commentRepository: commentRepo,
		dispatcher:        dispatcher,
	}
}

// Select targets a post, fetches its detail, and on success opens the session
// and loads the comment thread. Re-invoking Select while already selecting or
// open restarts the machine: the prior detail and thread are discarded
// immediately and any late response for them is dropped.
//
// A failed detail fetch leaves the session Selecting with a sticky error
// rather than reverting to Closed; calling Select again is the retry.
func (s *PostDetailSession) Select(ctx context.Context, postID string, actor *models.UserCompact) error {
	if actor == nil || actor.ID == 0 {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = StateSelecting
	s.postID = postID
	s.detail = nil
	s.loadErr = nil
	s.thread = nil
	s.mu.Unlock()

	post, err := s.postRepository.GetPostByID(ctx, postID)
	var item *FeedItem
	if err == nil {
		var items []FeedItem
		items, err = embedAuthors([]models.Post{*post}, s.userRepository)
		if err == nil {
			item = &items[0]
		}
	}

	s.mu.Lock()
	if s.gen != gen {
		// Superseded by a newer Select or a Close; drop the response.
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.loadErr = err
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	s.state = StateOpen
	s.detail = item
	thread := newCommentThread(*item, s.commentRepository, s.userRepository, s.dispatcher)
	s.thread = thread
	s.mu.Unlock()

	// Opening triggers the thread load. If this session has been
	// superseded meanwhile, the thread object is already unreachable and
	// the load result is invisible.
	if err := thread.Load(); err != nil {
		return err
	}
	return nil
}

// Close discards the detail and the comment thread and returns to Closed.
// Outstanding fetches for the discarded selection resolve into nothing.
func (s *PostDetailSession) Close() {
	s.mu.Lock()
	s.gen++
	s.state = StateClosed
	s.postID = ""
	s.detail = nil
	s.loadErr = nil
	s.thread = nil
	s.mu.Unlock()
}

// SubmitComment drafts and submits a comment on the currently open post.
func (s *PostDetailSession) SubmitComment(text string, actor *models.UserCompact) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}

	s.mu.Lock()
	thread := s.thread
	s.mu.Unlock()
	if thread == nil {
		return ErrNotAuthenticated
	}

	thread.SetDraft(text)
	return thread.Submit(actor)
}

// State returns the current lifecycle state.
func (s *PostDetailSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PostID returns the currently selected post's ID, set as soon as a
// selection is made, before its detail resolves. Empty when closed.
func (s *PostDetailSession) PostID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postID
}

// Detail returns the resolved detail, or nil while loading or closed.
func (s *PostDetailSession) Detail() *FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	detail := *s.detail
	return &detail
}

// Err returns the sticky detail-fetch error, if the last Select failed.
func (s *PostDetailSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Thread returns the comment thread, valid only while the session is open.
func (s *PostDetailSession) Thread() *CommentThread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thread
}
