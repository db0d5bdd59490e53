package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/stretchr/testify/require"
)

type likeFixture struct {
	posts    *fakePostRepo
	users    *fakeUserRepo
	likes    *fakeLikeRepo
	notifs   *fakeNotificationRepo
	ledger   *LikeLedger
	actor    models.UserCompact
	author   models.User
	feedItem FeedItem
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()
	posts := newFakePostRepo()
	users := newFakeUserRepo()
	likes := newFakeLikeRepo()
	notifs := newFakeNotificationRepo()

	author := newTestUser(users, 1)
	actorUser := newTestUser(users, 2)
	actor := actorUser.ToCompact()
	post := newTestPost(posts, author.ID, time.Now())

	ledger := NewLikeLedger(likes, NewNotificationDispatcher(notifs))
	require.NoError(t, ledger.LoadAll())

	return &likeFixture{
		posts:    posts,
		users:    users,
		likes:    likes,
		notifs:   notifs,
		ledger:   ledger,
		actor:    actor,
		author:   author,
		feedItem: FeedItem{Post: post, Author: author.ToCompact()},
	}
}

func TestToggleRequiresActor(t *testing.T) {
	f := newLikeFixture(t)

	require.ErrorIs(t, f.ledger.Toggle(&f.feedItem, nil), ErrNotAuthenticated)
	require.Equal(t, 0, f.likes.createCalls, "no remote call without an actor")
}

func TestToggleOnAddsLikeAndNotifies(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))

	require.True(t, f.ledger.IsLiked(postID, f.actor.ID))
	require.Equal(t, 1, f.ledger.Count(postID))

	notifs := f.notifs.all()
	require.Len(t, notifs, 1)
	require.Equal(t, f.author.ID, notifs[0].ReceiverID)
	require.Equal(t, f.actor.ID, notifs[0].SenderID)
	require.Contains(t, notifs[0].Title, "liked your post")
}

func TestToggleOffRemovesLikeWithoutNotifying(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))

	require.False(t, f.ledger.IsLiked(postID, f.actor.ID))
	require.Equal(t, 0, f.ledger.Count(postID))
	require.Len(t, f.notifs.all(), 1, "removal never notifies")
}

func TestDoubleToggleRestoresMembership(t *testing.T) {
	f := newLikeFixture(t)

	// A pre-existing like from another user must survive the round trip.
	otherUser := newTestUser(f.users, 3)
	other := otherUser.ToCompact()
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &other))
	postID := f.feedItem.HexID()
	require.Equal(t, 1, f.ledger.Count(postID))

	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))

	require.Equal(t, 1, f.ledger.Count(postID))
	require.True(t, f.ledger.IsLiked(postID, other.ID))
	require.False(t, f.ledger.IsLiked(postID, f.actor.ID))
}

func TestSelfLikeNeverNotifies(t *testing.T) {
	f := newLikeFixture(t)
	self := f.author.ToCompact()

	require.NoError(t, f.ledger.Toggle(&f.feedItem, &self))

	require.True(t, f.ledger.IsLiked(f.feedItem.HexID(), self.ID))
	require.Empty(t, f.notifs.all())
}

func TestToggleFailureLeavesStateUnchanged(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	f.likes.failCreate = true
	require.ErrorIs(t, f.ledger.Toggle(&f.feedItem, &f.actor), ErrToggleFailed)
	require.False(t, f.ledger.IsLiked(postID, f.actor.ID))
	require.Empty(t, f.notifs.all())

	f.likes.failCreate = false
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))

	f.likes.failDelete = true
	require.ErrorIs(t, f.ledger.Toggle(&f.feedItem, &f.actor), ErrToggleFailed)
	require.True(t, f.ledger.IsLiked(postID, f.actor.ID), "failed delete keeps the like")
	require.Equal(t, 1, f.ledger.Count(postID))
}

func TestConcurrentToggleRetainsAtMostOneLike(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	f.likes.createGate = make(chan struct{})
	f.likes.createEntered = make(chan struct{}, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = f.ledger.Toggle(&f.feedItem, &f.actor)
	}()

	// Wait until the first toggle is inside the remote call, then race a
	// second one against it.
	<-f.likes.createEntered
	secondErr := f.ledger.Toggle(&f.feedItem, &f.actor)
	require.ErrorIs(t, secondErr, ErrToggleInFlight)
	require.ErrorIs(t, secondErr, ErrToggleFailed)

	close(f.likes.createGate)
	wg.Wait()
	require.NoError(t, firstErr)

	require.Equal(t, 1, f.likes.createCalls, "only one insert may reach the store")
	require.Equal(t, 1, f.ledger.Count(postID))
}

func TestCountMatchesLikeFacts(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	var actors []models.UserCompact
	for id := uint(10); id < 15; id++ {
		u := newTestUser(f.users, id)
		actors = append(actors, u.ToCompact())
	}
	for i := range actors {
		require.NoError(t, f.ledger.Toggle(&f.feedItem, &actors[i]))
	}

	require.Equal(t, len(actors), f.ledger.Count(postID))
	for _, a := range actors {
		require.True(t, f.ledger.IsLiked(postID, a.ID))
	}

	// Count must track the local fact set exactly, also after removals.
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &actors[0]))
	require.Equal(t, len(actors)-1, f.ledger.Count(postID))
}

func TestLoadAllReplacesLocalSet(t *testing.T) {
	f := newLikeFixture(t)
	postID := f.feedItem.HexID()

	// Seed the remote table behind the ledger's back, then refresh.
	require.NoError(t, f.likes.CreateLike(&models.Like{PostID: postID, UserID: 7}))
	require.Equal(t, 0, f.ledger.Count(postID))

	require.NoError(t, f.ledger.LoadAll())
	require.Equal(t, 1, f.ledger.Count(postID))
	require.True(t, f.ledger.IsLiked(postID, 7))
}

func TestLoadAllFailureKeepsLocalSet(t *testing.T) {
	f := newLikeFixture(t)
	require.NoError(t, f.ledger.Toggle(&f.feedItem, &f.actor))

	f.likes.failList = true
	require.ErrorIs(t, f.ledger.LoadAll(), ErrFetchFailed)
	require.True(t, f.ledger.IsLiked(f.feedItem.HexID(), f.actor.ID))
}
