package shared

// Asynq task type names
const (
	TypeReviewSubmittedEmail = "email:review_submitted"
	TypeReviewApprovedEmail  = "email:review_approved"
)

// ReviewSubmittedPayload is queued when a new review enters moderation.
// Recipient is the configured moderation address.
type ReviewSubmittedPayload struct {
	Recipient     string `json:"recipient"`
	ReviewID      string `json:"reviewId"`
	BookTitle     string `json:"bookTitle"`
	BookAuthor    string `json:"bookAuthor"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// ReviewApprovedPayload is queued on the pending -> approved transition.
// Recipient is the review owner's email address.
type ReviewApprovedPayload struct {
	Recipient    string `json:"recipient"`
	ReviewerName string `json:"reviewerName"`
	BookTitle    string `json:"bookTitle"`
	Rating       int    `json:"rating"`
}
