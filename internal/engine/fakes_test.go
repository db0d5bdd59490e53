package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/linkup-app/feed-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// gormModelAt builds an embedded gorm.Model carrying a fixed creation time.
func gormModelAt(createdAt time.Time) gorm.Model {
	return gorm.Model{CreatedAt: createdAt}
}

// In-memory remote store fakes. Each fake counts its calls and can be told to
// fail or to block, so tests can drive the failure and interleaving paths.

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[string]models.Post
	failList  bool
	failGet   bool
	getCalls  int
	listCalls int

	// blockOn makes GetPostByID for that ID wait until the channel is
	// closed; entered reports the ID once the call has started waiting.
	blockOn map[string]chan struct{}
	entered chan string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:   make(map[string]models.Post),
		blockOn: make(map[string]chan struct{}),
	}
}

func (f *fakePostRepo) add(post models.Post) models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	f.posts[post.ID.Hex()] = post
	return post
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	f.mu.Lock()
	f.posts[post.ID.Hex()] = *post
	f.mu.Unlock()
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	f.getCalls++
	gate := f.blockOn[id]
	f.mu.Unlock()

	if gate != nil {
		if f.entered != nil {
			f.entered <- id
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, fmt.Errorf("remote unavailable")
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("post not found")
	}
	return &post, nil
}

func (f *fakePostRepo) GetLatestPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failList {
		return nil, fmt.Errorf("remote unavailable")
	}
	posts := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	if int64(len(posts)) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

type fakeLikeRepo struct {
	mu          sync.Mutex
	likes       []models.Like
	nextID      uint
	failCreate  bool
	failDelete  bool
	failList    bool
	createCalls int
	deleteCalls int

	// createGate, when set, blocks CreateLike until closed; createEntered
	// is signalled once the call is waiting.
	createGate    chan struct{}
	createEntered chan struct{}
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{}
}

func (f *fakeLikeRepo) CreateLike(like *models.Like) error {
	f.mu.Lock()
	f.createCalls++
	gate := f.createGate
	f.mu.Unlock()

	if gate != nil {
		if f.createEntered != nil {
			f.createEntered <- struct{}{}
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("remote unavailable")
	}
	for _, l := range f.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	f.nextID++
	like.ID = f.nextID
	f.likes = append(f.likes, *like)
	return nil
}

func (f *fakeLikeRepo) DeleteLike(postID string, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.failDelete {
		return fmt.Errorf("remote unavailable")
	}
	for i, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			f.likes = append(f.likes[:i], f.likes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("like not found")
}

func (f *fakeLikeRepo) GetAllLikes() ([]models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, fmt.Errorf("remote unavailable")
	}
	out := make([]models.Like, len(f.likes))
	copy(out, f.likes)
	return out, nil
}

type fakeCommentRepo struct {
	mu          sync.Mutex
	comments    []models.Comment
	nextID      uint
	failCreate  bool
	failList    bool
	createCalls int
	listCalls   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate {
		return fmt.Errorf("remote unavailable")
	}
	f.nextID++
	comment.ID = f.nextID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	}
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failList {
		return nil, fmt.Errorf("remote unavailable")
	}
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("remote unavailable")
	}
	notification.ID = uint(len(f.notifications) + 1)
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetByReceiverID(receiverID uint, limit int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.ReceiverID == receiverID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) all() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uint]models.User
	failList bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User)}
}

func (f *fakeUserRepo) add(user models.User) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, fmt.Errorf("remote unavailable")
	}
	var out []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.FirebaseUID == firebaseUID {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}
