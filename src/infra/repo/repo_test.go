package repo

import (
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"qaboard/src/infra/db"
)

const (
	existsQuestionSQL = "SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)"
	existsAnswerSQL   = "SELECT EXISTS (SELECT 1 FROM answers WHERE id = $1)"
)

type fixture struct {
	mock      pgxmock.PgxPoolIface
	questions *QuestionRepository
	answers   *AnswerRepository
	votes     *VoteLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pg := db.NewWithPool(mock, log)
	votes := NewVoteLedger(pg, log)
	return &fixture{
		mock:      mock,
		questions: NewQuestionRepository(pg, votes, log),
		answers:   NewAnswerRepository(pg, votes, log),
		votes:     votes,
	}
}

func (f *fixture) expectExists(sql string, id int64, exists bool) {
	f.mock.ExpectQuery(regexp.QuoteMeta(sql)).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func (f *fixture) verify(t *testing.T) {
	t.Helper()
	require.NoError(t, f.mock.ExpectationsWereMet())
}
