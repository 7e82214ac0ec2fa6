package model

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("already reviewed this book")
	ErrBookNotFound    = errors.New("book not found")
	ErrNotOwner        = errors.New("review belongs to another user")
)
