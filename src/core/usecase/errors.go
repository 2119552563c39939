package usecase

import (
	"log/slog"

	"qaboard/src/core/domain"
)

// logFailure records storage failures with their internal detail. Expected
// outcomes (not found, invalid input) are returned without logging.
func logFailure(log *slog.Logger, op string, err error, args ...any) error {
	if domain.IsStorageError(err) || !domain.IsDomainError(err) {
		if log != nil {
			log.Error(op+" failed", append(args, "err", err)...)
		}
	}
	return err
}
