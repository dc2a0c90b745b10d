package api

import "github.com/edushare/edushare/edushare/domain"

// Post is the wire shape of a post, with the author label and attachment
// preview URL already resolved.
type Post struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Content        string `json:"content,omitempty"`
	ContentHTML    string `json:"content_html,omitempty"`
	Snippet        string `json:"snippet"`
	FeaturedFileID string `json:"featured_file_id,omitempty"`
	PreviewURL     string `json:"preview_url,omitempty"`
	Status         string `json:"status"`
	AuthorID       string `json:"author_id"`
	AuthorName     string `json:"author_name"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// PostProto is the payload for creating or updating a post.
type PostProto struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	FeaturedFileID string `json:"featured_file_id"`
	Status         string `json:"status"`
}

// PostList wraps a page of posts with its total.
type PostList struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// FromPost converts a domain post, attaching the preview URL when the post
// has a featured attachment.
func FromPost(p *domain.Post, previewURL func(string) string, includeBody bool) Post {
	out := Post{
		Slug:           p.Slug,
		Title:          p.Title,
		Snippet:        p.Snippet,
		FeaturedFileID: p.FeaturedFileID,
		Status:         p.Status,
		AuthorID:       p.AuthorID,
		AuthorName:     p.AuthorName,
		CreatedAt:      p.CreatedAt.Format(timeFormat),
		UpdatedAt:      p.UpdatedAt.Format(timeFormat),
	}
	if includeBody {
		out.Content = p.Content
		out.ContentHTML = p.ContentHTML
	}
	if p.FeaturedFileID != "" {
		out.PreviewURL = previewURL(p.FeaturedFileID)
	}
	return out
}
