package data

import "github.com/emzola/blogapi/internal/validator"

// Category defines a blog category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateCategory(v *validator.Validator, category *Category) {
	v.Check(category.Name != "", "name", "This field may not be blank.")
	v.Check(len(category.Name) <= 50, "name", "Ensure this field has no more than 50 characters.")
	v.Check(category.Slug != "", "slug", "Enter a valid slug.")
	v.Check(len(category.Slug) <= 50, "slug", "Ensure this field has no more than 50 characters.")
}
