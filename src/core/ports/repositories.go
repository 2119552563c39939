// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"qaboard/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// QuestionRepository stores questions and owns the cascading delete of their answers.
type QuestionRepository interface {
	Repository

	List(ctx context.Context) ([]domain.Question, error)
	// Search fails with ErrInvalidInput when the filter is empty.
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Question, error)
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	Create(ctx context.Context, in domain.QuestionInput) (int64, error)
	Update(ctx context.Context, id int64, in domain.QuestionInput) error
	// Delete removes the question and all of its answers in one transaction.
	Delete(ctx context.Context, id int64) error
	// DeleteAnswersOf removes every answer of the question, leaving the question itself.
	DeleteAnswersOf(ctx context.Context, id int64) error
	RecordVote(ctx context.Context, id int64, vote domain.Vote) error
	Score(ctx context.Context, id int64) (int64, error)
}

// AnswerRepository stores answers scoped to a parent question.
type AnswerRepository interface {
	ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error)
	Create(ctx context.Context, questionID int64, content string) (int64, error)
	RecordVote(ctx context.Context, answerID int64, vote domain.Vote) error
	Score(ctx context.Context, answerID int64) (int64, error)
}

// VoteLedger appends vote records. Existing rows are never mutated.
type VoteLedger interface {
	Record(ctx context.Context, target domain.VoteTarget, id int64, vote domain.Vote) error
	Score(ctx context.Context, target domain.VoteTarget, id int64) (int64, error)
}
