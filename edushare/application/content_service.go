package application

import (
	"context"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	maxTitleLength   = 200
	maxCommentLength = 2000
)

// CreatePostInput carries the user-supplied fields of a new post. The slug
// doubles as the document id and must be unique.
type CreatePostInput struct {
	Slug           string
	Title          string
	Content        string
	FeaturedFileID string
	Status         string
}

// UpdatePostInput carries the mutable fields of an existing post.
type UpdatePostInput struct {
	Title          string
	Content        string
	FeaturedFileID string
	Status         string
}

// ContentService wraps post, like, comment, and attachment operations.
// Author labels are resolved through the injected DisplayNameResolver so the
// content layer never talks to the authentication backend directly.
type ContentService struct {
	posts    domain.PostRepository
	likes    domain.LikeRepository
	comments domain.CommentRepository
	bucket   domain.Bucket

	resolver   DisplayNameResolver
	renderer   ContentRenderer
	previewURL func(fileID string) string
	now        func() time.Time
}

func NewContentService(
	posts domain.PostRepository,
	likes domain.LikeRepository,
	comments domain.CommentRepository,
	bucket domain.Bucket,
	resolver DisplayNameResolver,
	renderer ContentRenderer,
	previewURL func(fileID string) string,
) *ContentService {
	return &ContentService{
		posts:      posts,
		likes:      likes,
		comments:   comments,
		bucket:     bucket,
		resolver:   resolver,
		renderer:   renderer,
		previewURL: previewURL,
		now:        time.Now,
	}
}

// CreatePost validates, renders, and persists a new post owned by authorID.
func (s *ContentService) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*domain.Post, error) {
	if authorID == "" {
		return nil, domain.Validation("an author is required to create a post")
	}
	if err := validatePostInput(in.Slug, in.Title, in.Status); err != nil {
		return nil, err
	}

	rendered, err := s.renderer.Render(in.Content)
	if err != nil {
		return nil, domain.Validation("failed to render post content: %v", err)
	}

	now := s.now().UTC()
	post := &domain.Post{
		Slug:           in.Slug,
		Title:          in.Title,
		Content:        in.Content,
		ContentHTML:    rendered.HTML,
		Snippet:        rendered.Snippet,
		FeaturedFileID: in.FeaturedFileID,
		Status:         in.Status,
		AuthorID:       authorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	post.AuthorName = s.resolver.ResolveDisplayName(ctx, authorID)
	return post, nil
}

// UpdatePost replaces the mutable fields of a post. Only the author may
// update it; a replaced featured attachment is deleted from the bucket.
func (s *ContentService) UpdatePost(ctx context.Context, userID, slug string, in UpdatePostInput) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.Validation("only the author can update a post")
	}
	if err := validatePostInput(slug, in.Title, in.Status); err != nil {
		return nil, err
	}

	rendered, err := s.renderer.Render(in.Content)
	if err != nil {
		return nil, domain.Validation("failed to render post content: %v", err)
	}

	previousFileID := post.FeaturedFileID

	post.Title = in.Title
	post.Content = in.Content
	post.ContentHTML = rendered.HTML
	post.Snippet = rendered.Snippet
	post.FeaturedFileID = in.FeaturedFileID
	post.Status = in.Status
	post.UpdatedAt = s.now().UTC()

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if previousFileID != "" && previousFileID != in.FeaturedFileID {
		if err := s.bucket.Delete(ctx, previousFileID); err != nil && !domain.IsNotFound(err) {
			log.Error().Err(err).Str("fileID", previousFileID).Msg("Failed to delete replaced attachment")
		}
	}

	post.AuthorName = s.resolver.ResolveDisplayName(ctx, post.AuthorID)
	return post, nil
}

// DeletePost removes a post together with its attachment, likes, and
// comments. Only the author may delete it.
func (s *ContentService) DeletePost(ctx context.Context, userID, slug string) error {
	post, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.Validation("only the author can delete a post")
	}

	if err := s.posts.DeletePost(ctx, slug); err != nil {
		return err
	}

	if post.FeaturedFileID != "" {
		if err := s.bucket.Delete(ctx, post.FeaturedFileID); err != nil && !domain.IsNotFound(err) {
			return err
		}
	}

	if _, err := s.likes.DeleteLikesForPost(ctx, slug); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Failed to delete likes for post")
	}
	if _, err := s.comments.DeleteCommentsForPost(ctx, slug); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Failed to delete comments for post")
	}

	return nil
}

// GetPost retrieves a single post with its author label resolved.
func (s *ContentService) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	post.AuthorName = s.resolver.ResolveDisplayName(ctx, post.AuthorID)
	return post, nil
}

// ListPosts returns matching posts, newest first, with author labels
// resolved concurrently across the page. A nil filter lists active posts.
func (s *ContentService) ListPosts(ctx context.Context, filter *domain.PostFilter) ([]*domain.Post, error) {
	if filter == nil {
		filter = &domain.PostFilter{Status: domain.StatusActive}
	}

	posts, err := s.posts.ListPosts(ctx, *filter)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for _, post := range posts {
		wg.Go(func() {
			post.AuthorName = s.resolver.ResolveDisplayName(ctx, post.AuthorID)
		})
	}
	wg.Wait()

	return posts, nil
}

// UploadFile stores an attachment under a fresh random id.
func (s *ContentService) UploadFile(ctx context.Context, name, contentType string, r io.Reader) (*domain.FileInfo, error) {
	if name == "" {
		return nil, domain.Validation("a file name is required")
	}

	return s.bucket.Upload(ctx, uuid.NewString(), name, contentType, r)
}

// DeleteFile removes an attachment from the bucket.
func (s *ContentService) DeleteFile(ctx context.Context, fileID string) error {
	return s.bucket.Delete(ctx, fileID)
}

// GetFileInfo returns an attachment's metadata.
func (s *ContentService) GetFileInfo(ctx context.Context, fileID string) (*domain.FileInfo, error) {
	return s.bucket.Info(ctx, fileID)
}

// OpenFile returns an attachment's contents for download.
func (s *ContentService) OpenFile(ctx context.Context, fileID string) (io.ReadCloser, *domain.FileInfo, error) {
	return s.bucket.Open(ctx, fileID)
}

// FilePreviewURL builds the deterministic view URL for an attachment.
func (s *ContentService) FilePreviewURL(fileID string) string {
	return s.previewURL(fileID)
}

// LikePost records that userID liked postID. The composite like id makes
// this idempotent even under concurrent calls for the same pair.
func (s *ContentService) LikePost(ctx context.Context, postID, userID string) (*domain.Like, error) {
	if postID == "" || userID == "" {
		return nil, domain.Validation("a post and user are required to like")
	}

	like := &domain.Like{
		ID:        domain.LikeID(userID, postID),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}

	stored, _, err := s.likes.PutLike(ctx, like)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// UnlikePost removes the user's like, reporting whether one existed.
func (s *ContentService) UnlikePost(ctx context.Context, postID, userID string) (bool, error) {
	if postID == "" || userID == "" {
		return false, domain.Validation("a post and user are required to unlike")
	}

	return s.likes.DeleteLike(ctx, userID, postID)
}

// GetLikes lists all likes for a post with the total count.
func (s *ContentService) GetLikes(ctx context.Context, postID string) ([]*domain.Like, int64, error) {
	return s.likes.ListLikesByPost(ctx, postID)
}

// AddComment appends a comment to a post, denormalizing the author's display
// name at write time so reads stay cheap.
func (s *ContentService) AddComment(ctx context.Context, postID, userID, content string) (*domain.Comment, error) {
	if postID == "" || userID == "" {
		return nil, domain.Validation("a post and author are required to comment")
	}
	if content == "" {
		return nil, domain.Validation("comment content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return nil, domain.Validation("comment content exceeds %d characters", maxCommentLength)
	}

	comment := &domain.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   userID,
		AuthorName: s.resolver.ResolveDisplayName(ctx, userID),
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComments lists a post's comments oldest-first. Legacy comments written
// without a stored author name get one resolved lazily, in parallel.
func (s *ContentService) GetComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	comments, err := s.comments.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for _, comment := range comments {
		if comment.AuthorName != "" {
			continue
		}
		wg.Go(func() {
			comment.AuthorName = s.resolver.ResolveDisplayName(ctx, comment.AuthorID)
		})
	}
	wg.Wait()

	return comments, nil
}

func validatePostInput(slug, title, status string) error {
	if !slugRegex.MatchString(slug) {
		return domain.Validation("slug must be lowercase letters, digits, and hyphens")
	}
	if title == "" {
		return domain.Validation("a title is required")
	}
	if len(title) > maxTitleLength {
		return domain.Validation("title exceeds %d characters", maxTitleLength)
	}
	if status != domain.StatusActive && status != domain.StatusInactive {
		return domain.Validation("status must be %q or %q", domain.StatusActive, domain.StatusInactive)
	}
	return nil
}
