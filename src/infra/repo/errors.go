package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"qaboard/src/core/domain"
	"qaboard/src/infra/db"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// storageErr passes domain errors through and wraps anything else as a
// storage failure labelled with op.
func storageErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return domain.NewStorageError(op, err)
}

// Tables that may be existence-checked. Only these constants are ever
// formatted into SQL.
const (
	tableQuestions = "questions"
	tableAnswers   = "answers"
)

func rowExists(ctx context.Context, q db.Querier, table string, id int64) (bool, error) {
	var exists bool
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := q.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, domain.NewStorageError("check "+table, err)
	}
	return exists, nil
}
