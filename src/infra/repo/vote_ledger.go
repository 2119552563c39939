package repo

import (
	"context"
	"fmt"
	"log/slog"

	"qaboard/src/core/domain"
	"qaboard/src/infra/db"
	"qaboard/src/infra/logger"
)

// voteTable names the storage for one vote target. Every identifier here is
// a constant; none comes from a caller.
type voteTable struct {
	parent   string
	resource string
	votes    string
	fk       string
}

var voteTables = map[domain.VoteTarget]voteTable{
	domain.VoteOnQuestion: {parent: tableQuestions, resource: "question", votes: "question_votes", fk: "question_id"},
	domain.VoteOnAnswer:   {parent: tableAnswers, resource: "answer", votes: "answer_votes", fk: "answer_id"},
}

// VoteLedger appends vote rows for questions and answers. It has no update
// or delete operation.
type VoteLedger struct {
	pg  *db.Postgres
	log *slog.Logger
}

func NewVoteLedger(pg *db.Postgres, log *slog.Logger) *VoteLedger {
	return &VoteLedger{pg: pg, log: log}
}

func lookupVoteTable(target domain.VoteTarget) (voteTable, error) {
	t, ok := voteTables[target]
	if !ok {
		return voteTable{}, domain.NewValidationError("target", fmt.Sprintf("unknown vote target %q", target))
	}
	return t, nil
}

// Record validates the vote, checks the target exists and appends a row.
func (l *VoteLedger) Record(ctx context.Context, target domain.VoteTarget, id int64, vote domain.Vote) error {
	if err := vote.Validate(); err != nil {
		return err
	}
	t, err := lookupVoteTable(target)
	if err != nil {
		return err
	}

	exists, err := rowExists(ctx, l.pg, t.parent, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError(t.resource)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s, vote) VALUES ($1, $2)", t.votes, t.fk)
	if _, err := l.pg.Exec(ctx, insert, id, int(vote)); err != nil {
		switch {
		case isForeignKeyViolation(err):
			logger.Debug(l.log, "vote target deleted before insert", "target", target, "id", id)
			return domain.NewNotFoundError(t.resource)
		case isCheckViolation(err):
			return domain.NewValidationError("vote", "vote must be 1 or -1")
		}
		return domain.NewStorageError("record "+t.resource+" vote", err)
	}
	return nil
}

// Score sums the votes of one target. The sum is never stored.
func (l *VoteLedger) Score(ctx context.Context, target domain.VoteTarget, id int64) (int64, error) {
	t, err := lookupVoteTable(target)
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(ctx, l.pg, t.parent, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.NewNotFoundError(t.resource)
	}

	var score int64
	sum := fmt.Sprintf("SELECT COALESCE(SUM(vote), 0) FROM %s WHERE %s = $1", t.votes, t.fk)
	if err := l.pg.QueryRow(ctx, sum, id).Scan(&score); err != nil {
		return 0, domain.NewStorageError("score "+t.resource, err)
	}
	return score, nil
}
