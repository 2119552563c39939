package repo

import (
	"context"
	"log/slog"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
	"qaboard/src/infra/db"
	"qaboard/src/infra/logger"
)

var _ ports.AnswerRepository = (*AnswerRepository)(nil)

// AnswerRepository implements ports.AnswerRepository using pgx.
type AnswerRepository struct {
	pg    *db.Postgres
	votes *VoteLedger
	log   *slog.Logger
}

// NewAnswerRepository constructs a repository backed by Postgres.
func NewAnswerRepository(pg *db.Postgres, votes *VoteLedger, log *slog.Logger) *AnswerRepository {
	return &AnswerRepository{
		pg:    pg,
		votes: votes,
		log:   log,
	}
}

// ListByQuestion returns the id and content of every answer of a question.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	exists, err := rowExists(ctx, r.pg, tableQuestions, questionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("question")
	}

	const q = `SELECT id, content FROM answers WHERE question_id = $1 ORDER BY id`
	rows, err := r.pg.Query(ctx, q, questionID)
	if err != nil {
		return nil, domain.NewStorageError("list answers", err)
	}
	defer rows.Close()

	answers := []domain.Answer{}
	for rows.Next() {
		a := domain.Answer{QuestionID: questionID}
		if err := rows.Scan(&a.ID, &a.Content); err != nil {
			return nil, domain.NewStorageError("scan answer", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list answers", err)
	}
	return answers, nil
}

// Create inserts an answer under an existing question and returns its id.
func (r *AnswerRepository) Create(ctx context.Context, questionID int64, content string) (int64, error) {
	content, err := domain.NormalizeAnswerContent(content)
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(ctx, r.pg, tableQuestions, questionID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.NewNotFoundError("question")
	}

	const q = `
		INSERT INTO answers (content, question_id)
		VALUES ($1, $2)
		RETURNING id
	`
	var id int64
	if err := r.pg.QueryRow(ctx, q, content, questionID).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			logger.Debug(r.log, "question deleted before answer insert", "question_id", questionID)
			return 0, domain.NewNotFoundError("question")
		}
		return 0, domain.NewStorageError("create answer", err)
	}
	return id, nil
}

func (r *AnswerRepository) RecordVote(ctx context.Context, answerID int64, vote domain.Vote) error {
	return r.votes.Record(ctx, domain.VoteOnAnswer, answerID, vote)
}

func (r *AnswerRepository) Score(ctx context.Context, answerID int64) (int64, error) {
	return r.votes.Score(ctx, domain.VoteOnAnswer, answerID)
}
