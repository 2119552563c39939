// Package repo contains PostgreSQL implementations of the repository ports.
//
// Naming convention:
//   - Files: <entity>_repo.go (question_repo.go, answer_repo.go)
//   - Types: <Entity>Repository (QuestionRepository, AnswerRepository)
//
// All repositories receive the storage gateway via constructor injection.
// Single statements go straight to the pool; operations that span tables
// run inside db.Postgres.WithTx. Driver errors leave this package as
// domain.ErrStorage, missing rows as domain.ErrNotFound.
//
// Answer and vote inserts check that their parent exists first, and the
// schema's foreign keys reject an orphan insert that races a delete; that
// rejection is reported as domain.ErrNotFound as well.
package repo
