package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
	"qaboard/src/infra/db"
	"qaboard/src/infra/logger"
)

var _ ports.QuestionRepository = (*QuestionRepository)(nil)

const questionColumns = `id, title, description, category`

// QuestionRepository implements ports.QuestionRepository using pgx.
type QuestionRepository struct {
	pg    *db.Postgres
	votes *VoteLedger
	log   *slog.Logger
}

// NewQuestionRepository constructs a repository backed by Postgres.
func NewQuestionRepository(pg *db.Postgres, votes *VoteLedger, log *slog.Logger) *QuestionRepository {
	return &QuestionRepository{
		pg:    pg,
		votes: votes,
		log:   log,
	}
}

func (r *QuestionRepository) Health(ctx context.Context) error {
	return r.pg.Health(ctx)
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Category); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	const q = `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	rows, err := r.pg.Query(ctx, q)
	if err != nil {
		return nil, domain.NewStorageError("list questions", err)
	}
	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, domain.NewStorageError("scan questions", err)
	}
	return questions, nil
}

func (r *QuestionRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Question, error) {
	where, err := composeSearch(filter)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + questionColumns + ` FROM questions WHERE ` + where.SQL() + ` ORDER BY id`
	rows, err := r.pg.Query(ctx, q, where.Args()...)
	if err != nil {
		return nil, domain.NewStorageError("search questions", err)
	}
	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, domain.NewStorageError("scan questions", err)
	}
	return questions, nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	const q = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	var qu domain.Question
	if err := r.pg.QueryRow(ctx, q, id).Scan(&qu.ID, &qu.Title, &qu.Description, &qu.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("question")
		}
		return nil, domain.NewStorageError("get question", err)
	}
	return &qu, nil
}

func (r *QuestionRepository) Create(ctx context.Context, in domain.QuestionInput) (int64, error) {
	const q = `
		INSERT INTO questions (title, description, category)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.pg.QueryRow(ctx, q, in.Title, in.Description, in.Category).Scan(&id); err != nil {
		return 0, domain.NewStorageError("create question", err)
	}
	return id, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id int64, in domain.QuestionInput) error {
	const q = `
		UPDATE questions
		SET title = $2, description = $3, category = $4
		WHERE id = $1
	`
	res, err := r.pg.Exec(ctx, q, id, in.Title, in.Description, in.Category)
	if err != nil {
		return domain.NewStorageError("update question", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("question")
	}
	return nil
}

// Delete removes the question and every answer that references it in one
// transaction. Existence is re-checked under a row lock inside the
// transaction, so a concurrent answer or vote insert on this question waits
// and then fails its foreign key check instead of leaving an orphan.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	var answersDeleted int64
	err := r.pg.WithTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM questions WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("question")
			}
			return domain.NewStorageError("lock question", err)
		}

		res, err := tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, id)
		if err != nil {
			return domain.NewStorageError("delete answers", err)
		}
		answersDeleted = res.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
			return domain.NewStorageError("delete question", err)
		}
		return nil
	})
	if err != nil {
		return storageErr("delete question", err)
	}

	logger.Info(r.log, "question deleted", "question_id", id, "answers_deleted", answersDeleted)
	return nil
}

// DeleteAnswersOf removes all answers of a question without a transaction;
// it is a single DELETE once the question is known to exist.
func (r *QuestionRepository) DeleteAnswersOf(ctx context.Context, id int64) error {
	exists, err := rowExists(ctx, r.pg, tableQuestions, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("question")
	}

	if _, err := r.pg.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, id); err != nil {
		return domain.NewStorageError("delete answers", err)
	}
	return nil
}

func (r *QuestionRepository) RecordVote(ctx context.Context, id int64, vote domain.Vote) error {
	return r.votes.Record(ctx, domain.VoteOnQuestion, id, vote)
}

func (r *QuestionRepository) Score(ctx context.Context, id int64) (int64, error) {
	return r.votes.Score(ctx, domain.VoteOnQuestion, id)
}
