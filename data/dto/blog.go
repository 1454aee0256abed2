package dto

// CategoryRequestBody defines a request body for creating and replacing a category.
type CategoryRequestBody struct {
	Name string  `json:"name" validate:"required,max=50"`
	Slug *string `json:"slug" validate:"omitempty,max=50"`
}

// PostRequestBody defines a request body for creating and replacing a post.
type PostRequestBody struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Slug       *string  `json:"slug" validate:"omitempty,max=200"`
	Content    string   `json:"content" validate:"required"`
	ImageURL   *string  `json:"post_image_url" validate:"omitempty,url,max=250"`
	Status     string   `json:"status" validate:"required,oneof=draft published"`
	CategoryID int64    `json:"category_id" validate:"required,min=1"`
	Tags       []string `json:"tags" validate:"omitempty,dive,required,max=100"`
}

// PostPatchRequestBody defines a request body for UpdatePartialPost interactor.
// Absent fields keep their current value.
type PostPatchRequestBody struct {
	Title      *string  `json:"title" validate:"omitempty,max=200"`
	Slug       *string  `json:"slug" validate:"omitempty,max=200"`
	Content    *string  `json:"content"`
	ImageURL   *string  `json:"post_image_url" validate:"omitempty,url,max=250"`
	Status     *string  `json:"status" validate:"omitempty,oneof=draft published"`
	CategoryID *int64   `json:"category_id" validate:"omitempty,min=1"`
	Tags       []string `json:"tags" validate:"omitempty,dive,required,max=100"`
}

// CommentRequestBody defines a request body for creating and updating a comment.
type CommentRequestBody struct {
	Body string `json:"body" validate:"required,max=255"`
}
