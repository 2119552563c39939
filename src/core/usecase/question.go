package usecase

import (
	"context"
	"log/slog"
	"strings"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// QuestionService handles question workflows.
type QuestionService struct {
	repo ports.QuestionRepository
	log  *slog.Logger
}

func NewQuestionService(repo ports.QuestionRepository, log *slog.Logger) *QuestionService {
	return &QuestionService{repo: repo, log: log}
}

// List returns every question.
func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, logFailure(s.log, "list questions", err)
	}
	return questions, nil
}

// Search filters questions by title and/or category substring. At least one
// filter must be non-blank.
func (s *QuestionService) Search(ctx context.Context, title, category string) ([]domain.Question, error) {
	filter := domain.SearchFilter{
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
	}
	questions, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, logFailure(s.log, "search questions", err, "title", filter.Title, "category", filter.Category)
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, logFailure(s.log, "get question", err, "question_id", id)
	}
	return q, nil
}

// Create stores a new question and returns its id.
func (s *QuestionService) Create(ctx context.Context, title, description, category string) (int64, error) {
	in, err := domain.NewQuestionInput(title, description, category)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, logFailure(s.log, "create question", err)
	}
	return id, nil
}

// Update replaces title, description and category in one statement.
func (s *QuestionService) Update(ctx context.Context, id int64, title, description, category string) error {
	in, err := domain.NewQuestionInput(title, description, category)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return logFailure(s.log, "update question", err, "question_id", id)
	}
	return nil
}

// Delete removes the question together with all of its answers.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return logFailure(s.log, "delete question", err, "question_id", id)
	}
	return nil
}

// DeleteAnswers removes every answer of the question but keeps the question.
func (s *QuestionService) DeleteAnswers(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAnswersOf(ctx, id); err != nil {
		return logFailure(s.log, "delete answers", err, "question_id", id)
	}
	return nil
}

func (s *QuestionService) Vote(ctx context.Context, id int64, vote int) error {
	if err := s.repo.RecordVote(ctx, id, domain.Vote(vote)); err != nil {
		return logFailure(s.log, "vote question", err, "question_id", id)
	}
	return nil
}

// Score returns the sum of the question's votes.
func (s *QuestionService) Score(ctx context.Context, id int64) (int64, error) {
	score, err := s.repo.Score(ctx, id)
	if err != nil {
		return 0, logFailure(s.log, "score question", err, "question_id", id)
	}
	return score, nil
}
