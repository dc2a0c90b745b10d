// Package memory implements every EduShare repository against in-process
// maps. It backs tests and the "memory" storage backend for local
// development; semantics (uniqueness, not-found, like idempotency) match the
// MongoDB implementation.
package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/edushare/edushare/edushare/domain"
)

type storedFile struct {
	info domain.FileInfo
	data []byte
}

// Store holds all collections behind one mutex. Documents are copied on the
// way in and out so callers never alias store state.
type Store struct {
	mu sync.RWMutex

	accounts        map[string]*domain.Account
	accountsByEmail map[string]string
	sessions        map[string]*domain.Session
	profiles        map[string]*domain.Profile
	posts           map[string]*domain.Post
	likes           map[string]*domain.Like
	comments        map[string]*domain.Comment
	files           map[string]*storedFile
}

func New() *Store {
	return &Store{
		accounts:        make(map[string]*domain.Account),
		accountsByEmail: make(map[string]string),
		sessions:        make(map[string]*domain.Session),
		profiles:        make(map[string]*domain.Profile),
		posts:           make(map[string]*domain.Post),
		likes:           make(map[string]*domain.Like),
		comments:        make(map[string]*domain.Comment),
		files:           make(map[string]*storedFile),
	}
}

var (
	_ domain.AccountRepository = (*Store)(nil)
	_ domain.SessionRepository = (*Store)(nil)
	_ domain.ProfileRepository = (*Store)(nil)
	_ domain.PostRepository    = (*Store)(nil)
	_ domain.LikeRepository    = (*Store)(nil)
	_ domain.CommentRepository = (*Store)(nil)
	_ domain.Bucket            = (*Store)(nil)
)

// === Accounts ===

func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accountsByEmail[a.Email]; exists {
		return domain.Conflict("email %s is already registered", a.Email)
	}

	stored := *a
	s.accounts[a.ID] = &stored
	s.accountsByEmail[a.Email] = a.ID
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.NotFound("account %s not found", id)
	}
	copied := *account
	return &copied, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountsByEmail[email]
	if !ok {
		return nil, domain.NotFound("no account for email %s", email)
	}
	copied := *s.accounts[id]
	return &copied, nil
}

// === Sessions ===

func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sess
	s.sessions[sess.ID] = &stored
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.NotFound("session %s not found", id)
	}
	copied := *session
	return &copied, nil
}

func (s *Store) DeleteSessionsForUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// === Profiles ===

func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[p.UserID]; exists {
		return domain.Conflict("profile for user %s already exists", p.UserID)
	}

	stored := *p
	s.profiles[p.UserID] = &stored
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, domain.NotFound("profile for user %s not found", userID)
	}
	copied := *profile
	return &copied, nil
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[p.Slug]; exists {
		return domain.Conflict("post slug %s is already taken", p.Slug)
	}

	stored := *p
	stored.AuthorName = ""
	s.posts[p.Slug] = &stored
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[p.Slug]; !exists {
		return domain.NotFound("post %s not found", p.Slug)
	}

	stored := *p
	stored.AuthorName = ""
	s.posts[p.Slug] = &stored
	return nil
}

func (s *Store) DeletePost(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[slug]; !exists {
		return domain.NotFound("post %s not found", slug)
	}

	delete(s.posts, slug)
	return nil
}

func (s *Store) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[slug]
	if !ok {
		return nil, domain.NotFound("post %s not found", slug)
	}
	copied := *post
	return &copied, nil
}

func (s *Store) ListPosts(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		copied := *post
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Slug < matched[j].Slug
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(matched) {
		return []*domain.Post{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], nil
}

// === Likes ===

func (s *Store) PutLike(ctx context.Context, l *domain.Like) (*domain.Like, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.likes[l.ID]; ok {
		copied := *existing
		return &copied, true, nil
	}

	stored := *l
	s.likes[l.ID] = &stored
	copied := stored
	return &copied, false, nil
}

func (s *Store) DeleteLike(ctx context.Context, userID, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.LikeID(userID, postID)
	if _, ok := s.likes[id]; !ok {
		return false, nil
	}
	delete(s.likes, id)
	return true, nil
}

func (s *Store) ListLikesByPost(ctx context.Context, postID string) ([]*domain.Like, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes := make([]*domain.Like, 0)
	for _, like := range s.likes {
		if like.PostID == postID {
			copied := *like
			likes = append(likes, &copied)
		}
	}

	sort.Slice(likes, func(i, j int) bool {
		return likes[i].CreatedAt.Before(likes[j].CreatedAt)
	})

	return likes, int64(len(likes)), nil
}

func (s *Store) DeleteLikesForPost(ctx context.Context, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, like := range s.likes {
		if like.PostID == postID {
			delete(s.likes, id)
			deleted++
		}
	}
	return deleted, nil
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	s.comments[c.ID] = &stored
	return nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*domain.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

func (s *Store) DeleteCommentsForPost(ctx context.Context, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, comment := range s.comments {
		if comment.PostID == postID {
			delete(s.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

// === Bucket ===

func (s *Store) Upload(ctx context.Context, id, name, contentType string, r io.Reader) (*domain.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.Transient(err, "failed to read upload %s", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info := domain.FileInfo{
		ID:          id,
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	s.files[id] = &storedFile{info: info, data: data}

	copied := info
	return &copied, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return domain.NotFound("file %s not found", id)
	}
	delete(s.files, id)
	return nil
}

func (s *Store) Info(ctx context.Context, id string) (*domain.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return nil, domain.NotFound("file %s not found", id)
	}
	copied := file.info
	return &copied, nil
}

func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, *domain.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return nil, nil, domain.NotFound("file %s not found", id)
	}
	copied := file.info
	return io.NopCloser(bytes.NewReader(file.data)), &copied, nil
}
