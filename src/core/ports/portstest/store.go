// Package portstest provides an in-memory implementation of the repository
// ports for use in tests of the layers above storage.
package portstest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// Store keeps questions, answers and votes in memory and mirrors the error
// contract of the Postgres repositories.
type Store struct {
	mu            sync.Mutex
	nextID        int64
	questions     map[int64]domain.Question
	answers       map[int64]domain.Answer
	questionVotes map[int64][]domain.Vote
	answerVotes   map[int64][]domain.Vote

	// Err, when set, is returned from every operation as a storage failure.
	Err error
}

func NewStore() *Store {
	return &Store{
		questions:     map[int64]domain.Question{},
		answers:       map[int64]domain.Answer{},
		questionVotes: map[int64][]domain.Vote{},
		answerVotes:   map[int64][]domain.Vote{},
	}
}

// Questions returns the question repository view of the store.
func (s *Store) Questions() ports.QuestionRepository { return questionView{s} }

// Answers returns the answer repository view of the store.
func (s *Store) Answers() ports.AnswerRepository { return answerView{s} }

// AnswerCount returns how many answers reference questionID.
func (s *Store) AnswerCount(questionID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			n++
		}
	}
	return n
}

func (s *Store) fail(op string) error {
	if s.Err != nil {
		return domain.NewStorageError(op, s.Err)
	}
	return nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedQuestions(m map[int64]domain.Question, keep func(domain.Question) bool) []domain.Question {
	out := []domain.Question{}
	for _, q := range m {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type questionView struct{ s *Store }

func (v questionView) Health(context.Context) error { return v.s.fail("ping") }

func (v questionView) List(context.Context) ([]domain.Question, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("list questions"); err != nil {
		return nil, err
	}
	return sortedQuestions(v.s.questions, func(domain.Question) bool { return true }), nil
}

func (v questionView) Search(_ context.Context, f domain.SearchFilter) ([]domain.Question, error) {
	if f.IsEmpty() {
		return nil, domain.NewValidationError("search", "title or category is required")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("search questions"); err != nil {
		return nil, err
	}
	return sortedQuestions(v.s.questions, func(q domain.Question) bool {
		return (f.Title == "" || containsFold(q.Title, f.Title)) &&
			(f.Category == "" || containsFold(q.Category, f.Category))
	}), nil
}

func (v questionView) GetByID(_ context.Context, id int64) (*domain.Question, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("get question"); err != nil {
		return nil, err
	}
	q, ok := v.s.questions[id]
	if !ok {
		return nil, domain.NewNotFoundError("question")
	}
	return &q, nil
}

func (v questionView) Create(_ context.Context, in domain.QuestionInput) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("create question"); err != nil {
		return 0, err
	}
	id := v.s.id()
	v.s.questions[id] = domain.Question{ID: id, Title: in.Title, Description: in.Description, Category: in.Category}
	return id, nil
}

func (v questionView) Update(_ context.Context, id int64, in domain.QuestionInput) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("update question"); err != nil {
		return err
	}
	if _, ok := v.s.questions[id]; !ok {
		return domain.NewNotFoundError("question")
	}
	v.s.questions[id] = domain.Question{ID: id, Title: in.Title, Description: in.Description, Category: in.Category}
	return nil
}

func (v questionView) Delete(_ context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("delete question"); err != nil {
		return err
	}
	if _, ok := v.s.questions[id]; !ok {
		return domain.NewNotFoundError("question")
	}
	v.s.deleteAnswersLocked(id)
	delete(v.s.questions, id)
	delete(v.s.questionVotes, id)
	return nil
}

func (v questionView) DeleteAnswersOf(_ context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("delete answers"); err != nil {
		return err
	}
	if _, ok := v.s.questions[id]; !ok {
		return domain.NewNotFoundError("question")
	}
	v.s.deleteAnswersLocked(id)
	return nil
}

func (s *Store) deleteAnswersLocked(questionID int64) {
	for id, a := range s.answers {
		if a.QuestionID == questionID {
			delete(s.answers, id)
			delete(s.answerVotes, id)
		}
	}
}

func (v questionView) RecordVote(_ context.Context, id int64, vote domain.Vote) error {
	if err := vote.Validate(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("record question vote"); err != nil {
		return err
	}
	if _, ok := v.s.questions[id]; !ok {
		return domain.NewNotFoundError("question")
	}
	v.s.questionVotes[id] = append(v.s.questionVotes[id], vote)
	return nil
}

func (v questionView) Score(_ context.Context, id int64) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("score question"); err != nil {
		return 0, err
	}
	if _, ok := v.s.questions[id]; !ok {
		return 0, domain.NewNotFoundError("question")
	}
	return sum(v.s.questionVotes[id]), nil
}

type answerView struct{ s *Store }

func (v answerView) ListByQuestion(_ context.Context, questionID int64) ([]domain.Answer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("list answers"); err != nil {
		return nil, err
	}
	if _, ok := v.s.questions[questionID]; !ok {
		return nil, domain.NewNotFoundError("question")
	}
	out := []domain.Answer{}
	for _, a := range v.s.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v answerView) Create(_ context.Context, questionID int64, content string) (int64, error) {
	content, err := domain.NormalizeAnswerContent(content)
	if err != nil {
		return 0, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("create answer"); err != nil {
		return 0, err
	}
	if _, ok := v.s.questions[questionID]; !ok {
		return 0, domain.NewNotFoundError("question")
	}
	id := v.s.id()
	v.s.answers[id] = domain.Answer{ID: id, Content: content, QuestionID: questionID}
	return id, nil
}

func (v answerView) RecordVote(_ context.Context, answerID int64, vote domain.Vote) error {
	if err := vote.Validate(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("record answer vote"); err != nil {
		return err
	}
	if _, ok := v.s.answers[answerID]; !ok {
		return domain.NewNotFoundError("answer")
	}
	v.s.answerVotes[answerID] = append(v.s.answerVotes[answerID], vote)
	return nil
}

func (v answerView) Score(_ context.Context, answerID int64) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail("score answer"); err != nil {
		return 0, err
	}
	if _, ok := v.s.answers[answerID]; !ok {
		return 0, domain.NewNotFoundError("answer")
	}
	return sum(v.s.answerVotes[answerID]), nil
}

func sum(votes []domain.Vote) int64 {
	var total int64
	for _, v := range votes {
		total += int64(v)
	}
	return total
}
