package book

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrAuthorNotFound   = errors.New("book author not found")
	ErrCategoryNotFound = errors.New("book category not found")
	ErrInvalidCover     = errors.New("cover file is invalid")
)
