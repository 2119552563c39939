package handler

import (
	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/dto"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/usecase"
)

// AnswerHandler handles answer endpoints.
type AnswerHandler struct {
	answerService *usecase.AnswerService
}

func NewAnswerHandler(answerService *usecase.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// List returns the answers of a question.
// GET /questions/:question_id/answers
func (h *AnswerHandler) List(c *gin.Context) {
	questionID, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	answers, err := h.answerService.List(c.Request.Context(), questionID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, answers)
}

// Create posts an answer to a question.
// POST /questions/:question_id/answers
func (h *AnswerHandler) Create(c *gin.Context) {
	questionID, ok := pathID(c, "question_id", "question")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content is required", middleware.GetRequestID(c))
		return
	}
	id, err := h.answerService.Create(c.Request.Context(), questionID, req.Content)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, response.Message{Message: "answer created", ID: id})
}

// Vote records a +1/-1 on an answer.
// POST /answers/:answer_id/vote
func (h *AnswerHandler) Vote(c *gin.Context) {
	id, ok := pathID(c, "answer_id", "answer")
	if !ok {
		return
	}
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "vote is required", middleware.GetRequestID(c))
		return
	}
	if err := h.answerService.Vote(c.Request.Context(), id, *req.Vote); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Message{Message: "vote recorded", ID: id})
}

// GET /answers/:answer_id/score
func (h *AnswerHandler) Score(c *gin.Context) {
	id, ok := pathID(c, "answer_id", "answer")
	if !ok {
		return
	}
	score, err := h.answerService.Score(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, response.Score{ID: id, Score: score})
}
