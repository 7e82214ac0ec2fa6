package model

const (
	// Rating bounds
	MinRating = 1
	MaxRating = 5

	// Content limit
	MaxCommentLength = 2000

	// Moderation listing page size
	PageSize = 10
)
