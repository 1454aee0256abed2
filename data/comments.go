package data

import (
	"github.com/emzola/blogapi/internal/validator"
)

// Comment defines a comment left on a post.
type Comment struct {
	ID       int64     `json:"id"`
	Body     string    `json:"body"`
	PostID   int64     `json:"post_id"`
	Author   string    `json:"author"`
	AuthorID int64     `json:"author_id"`
	Created  Timestamp `json:"created"`
	Updated  Timestamp `json:"updated"`
	Active   bool      `json:"-"`
	Likes    int64     `json:"likes"`
	Dislikes int64     `json:"dislikes"`
}

func ValidateComment(v *validator.Validator, body string) {
	v.Check(body != "", "body", "This field may not be blank.")
	v.Check(len(body) <= 255, "body", "Ensure this field has no more than 255 characters.")
}
