package handler

import (
	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/dto"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/usecase"
)

// QuestionHandler handles question endpoints, including the question-scoped
// answer deletion and voting.
type QuestionHandler struct {
	questionService *usecase.QuestionService
}

func NewQuestionHandler(questionService *usecase.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List returns every question.
// GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, questions)
}

// Search filters by title and/or category.
// GET /questions/search?title=&category=
func (h *QuestionHandler) Search(c *gin.Context) {
	questions, err := h.questionService.Search(c.Request.Context(), c.Query("title"), c.Query("category"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, questions)
}

// Get returns one question.
// GET /questions/:question_id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	q, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, q)
}

// Create posts a new question.
// POST /questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, description and category are required", middleware.GetRequestID(c))
		return
	}
	id, err := h.questionService.Create(c.Request.Context(), req.Title, req.Description, req.Category)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, response.Message{Message: "question created", ID: id})
}

// Update replaces a question's fields.
// PUT /questions/:question_id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, description and category are required", middleware.GetRequestID(c))
		return
	}
	if err := h.questionService.Update(c.Request.Context(), id, req.Title, req.Description, req.Category); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Message{Message: "question updated", ID: id})
}

// Delete removes a question and its answers.
// DELETE /questions/:question_id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Message{Message: "question deleted", ID: id})
}

// DeleteAnswers removes all answers of a question.
// DELETE /questions/:question_id/answers
func (h *QuestionHandler) DeleteAnswers(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	if err := h.questionService.DeleteAnswers(c.Request.Context(), id); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Message{Message: "answers deleted", ID: id})
}

// Vote records a +1/-1 on a question.
// POST /questions/:question_id/vote
func (h *QuestionHandler) Vote(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "vote is required", middleware.GetRequestID(c))
		return
	}
	if err := h.questionService.Vote(c.Request.Context(), id, *req.Vote); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Message{Message: "vote recorded", ID: id})
}

// Score returns the sum of a question's votes.
// GET /questions/:question_id/score
func (h *QuestionHandler) Score(c *gin.Context) {
	id, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	score, err := h.questionService.Score(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Score{ID: id, Score: score})
}
