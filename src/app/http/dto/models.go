package dto

// QuestionRequest is the payload for creating or replacing a question.
type QuestionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

// AnswerRequest is the payload for posting an answer.
type AnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

// VoteRequest carries a single +1/-1 vote. A pointer so that an explicit 0
// reaches the core and is rejected there instead of failing `required`.
type VoteRequest struct {
	Vote *int `json:"vote" binding:"required"`
}
