package usecase

import (
	"context"
	"log/slog"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// AnswerService handles answer workflows.
type AnswerService struct {
	repo ports.AnswerRepository
	log  *slog.Logger
}

func NewAnswerService(repo ports.AnswerRepository, log *slog.Logger) *AnswerService {
	return &AnswerService{repo: repo, log: log}
}

// List returns the answers of a question, or ErrNotFound if the question is gone.
func (s *AnswerService) List(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	answers, err := s.repo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, logFailure(s.log, "list answers", err, "question_id", questionID)
	}
	return answers, nil
}

// Create adds an answer to an existing question.
func (s *AnswerService) Create(ctx context.Context, questionID int64, content string) (int64, error) {
	content, err := domain.NormalizeAnswerContent(content)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, questionID, content)
	if err != nil {
		return 0, logFailure(s.log, "create answer", err, "question_id", questionID)
	}
	return id, nil
}

func (s *AnswerService) Vote(ctx context.Context, answerID int64, vote int) error {
	if err := s.repo.RecordVote(ctx, answerID, domain.Vote(vote)); err != nil {
		return logFailure(s.log, "vote answer", err, "answer_id", answerID)
	}
	return nil
}

func (s *AnswerService) Score(ctx context.Context, answerID int64) (int64, error) {
	score, err := s.repo.Score(ctx, answerID)
	if err != nil {
		return 0, logFailure(s.log, "score answer", err, "answer_id", answerID)
	}
	return score, nil
}
