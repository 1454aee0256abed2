package data

import (
	"github.com/emzola/blogapi/internal/validator"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post defines a blog post as returned to clients.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Author        string    `json:"author"`
	AuthorID      int64     `json:"author_id"`
	Content       string    `json:"content"`
	Publish       Timestamp `json:"publish"`
	Created       Timestamp `json:"-"`
	Updated       Timestamp `json:"-"`
	ImageURL      *string   `json:"post_image_url"`
	Status        string    `json:"-"`
	Category      string    `json:"category"`
	CategoryID    int64     `json:"category_id"`
	LikesCount    int64     `json:"likes_count"`
	DislikesCount int64     `json:"dislikes_count"`
	Tags          []string  `json:"tags"`
}

// PostInput carries the writable fields of a post for create and full update.
type PostInput struct {
	Title      string
	Slug       *string
	AuthorID   int64
	Content    string
	ImageURL   *string
	Status     string
	CategoryID int64
	Tags       []string
}

// PostPatch carries a partial update; nil fields are left untouched.
type PostPatch struct {
	Title      *string
	Slug       *string
	Content    *string
	ImageURL   *string
	Status     *string
	CategoryID *int64
	Tags       []string
}

// StatusChoiceMessage is reported for an unknown post status.
const StatusChoiceMessage = "Invalid status. Available choices are: draft, published."

func ValidatePostInput(v *validator.Validator, input *PostInput) {
	v.Check(input.Title != "", "title", "This field may not be blank.")
	v.Check(len(input.Title) <= 200, "title", "Ensure this field has no more than 200 characters.")
	v.Check(input.Content != "", "content", "This field may not be blank.")
	v.Check(validator.PermittedValue(input.Status, StatusDraft, StatusPublished), "status", StatusChoiceMessage)
	v.Check(input.CategoryID > 0, "category_id", "A valid integer is required.")
	if input.ImageURL != nil {
		v.Check(len(*input.ImageURL) <= 250, "post_image_url", "Ensure this field has no more than 250 characters.")
	}
	validateTags(v, input.Tags)
}

func ValidatePostPatch(v *validator.Validator, patch *PostPatch) {
	if patch.Title != nil {
		v.Check(*patch.Title != "", "title", "This field may not be blank.")
		v.Check(len(*patch.Title) <= 200, "title", "Ensure this field has no more than 200 characters.")
	}
	if patch.Status != nil {
		v.Check(validator.PermittedValue(*patch.Status, StatusDraft, StatusPublished), "status", StatusChoiceMessage)
	}
	if patch.CategoryID != nil {
		v.Check(*patch.CategoryID > 0, "category_id", "A valid integer is required.")
	}
	if patch.ImageURL != nil {
		v.Check(len(*patch.ImageURL) <= 250, "post_image_url", "Ensure this field has no more than 250 characters.")
	}
	if patch.Tags != nil {
		validateTags(v, patch.Tags)
	}
}

func validateTags(v *validator.Validator, tags []string) {
	for _, tag := range tags {
		v.Check(tag != "", "tags", "This field may not be blank.")
		v.Check(len(tag) <= 100, "tags", "Ensure this field has no more than 100 characters.")
	}
}

// NormalizeTags drops duplicates while keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
