// Package domain contains the core domain model for the Q&A board.
//
// This package defines:
//   - Entities: Question, Answer and the vote records attached to either
//   - Value Objects: Vote, VoteTarget, QuestionInput, SearchFilter
//   - Domain Errors: the InvalidArgument / NotFound / StorageFailure kinds
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Value objects validate their own invariants on construction
//
// Example:
//
//	in, err := domain.NewQuestionInput(" Q1 ", "D1", "general")
//	if err != nil {
//	    return err // wraps domain.ErrInvalidInput
//	}
//	id, err := questions.Create(ctx, in)
package domain
