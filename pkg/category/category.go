package category

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

// Category is a spending category plan items and expenses are grouped under.
type Category struct {
	Id    int
	Name  string
	Color string
	Icon  string
}
