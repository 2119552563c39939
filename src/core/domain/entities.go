package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxAnswerLength is the maximum number of characters in an answer after trimming.
const MaxAnswerLength = 300

// Question is a posted topic, the root of an answer/vote tree.
type Question struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Answer is a response scoped to exactly one question.
type Answer struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	QuestionID int64  `json:"-"`
}

// Vote is a single +1/-1 record. Any other value is invalid.
type Vote int

const (
	Upvote   Vote = 1
	Downvote Vote = -1
)

// Validate reports whether v is exactly +1 or -1.
func (v Vote) Validate() error {
	if v != Upvote && v != Downvote {
		return NewValidationError("vote", "vote must be 1 or -1")
	}
	return nil
}

// VoteTarget identifies which kind of entity a vote is cast on.
type VoteTarget string

const (
	VoteOnQuestion VoteTarget = "question"
	VoteOnAnswer   VoteTarget = "answer"
)

// QuestionInput holds the trimmed, non-empty fields of a question.
type QuestionInput struct {
	Title       string
	Description string
	Category    string
}

// NewQuestionInput trims every field and rejects empty values.
func NewQuestionInput(title, description, category string) (QuestionInput, error) {
	in := QuestionInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
	}
	switch {
	case in.Title == "":
		return QuestionInput{}, NewValidationError("title", "title is required")
	case in.Description == "":
		return QuestionInput{}, NewValidationError("description", "description is required")
	case in.Category == "":
		return QuestionInput{}, NewValidationError("category", "category is required")
	}
	return in, nil
}

// NormalizeAnswerContent trims content and enforces 1..MaxAnswerLength characters.
func NormalizeAnswerContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", NewValidationError("content", "content is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxAnswerLength {
		return "", NewValidationError("content", "content must be at most 300 characters")
	}
	return trimmed, nil
}

// SearchFilter selects questions by case-insensitive substring.
// An empty field means the filter is absent.
type SearchFilter struct {
	Title    string
	Category string
}

// IsEmpty reports whether neither filter is present.
func (f SearchFilter) IsEmpty() bool {
	return f.Title == "" && f.Category == ""
}
