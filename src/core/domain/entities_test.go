package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteValidate(t *testing.T) {
	assert.NoError(t, Upvote.Validate())
	assert.NoError(t, Downvote.Validate())

	for _, v := range []Vote{0, 2, -2, 100, -100} {
		err := v.Validate()
		require.Error(t, err, "vote %d", v)
		assert.True(t, IsValidationError(err))
	}
}

func TestNewQuestionInputTrims(t *testing.T) {
	in, err := NewQuestionInput("  Q1 ", "\tD1\n", " general ")
	require.NoError(t, err)
	assert.Equal(t, QuestionInput{Title: "Q1", Description: "D1", Category: "general"}, in)
}

func TestNewQuestionInputRejectsBlankFields(t *testing.T) {
	cases := map[string][3]string{
		"title":       {"  ", "d", "c"},
		"description": {"t", "", "c"},
		"category":    {"t", "d", "   "},
	}
	for field, args := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := NewQuestionInput(args[0], args[1], args[2])
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, field, de.Field)
		})
	}
}

func TestNormalizeAnswerContent(t *testing.T) {
	got, err := NormalizeAnswerContent("  A1  ")
	require.NoError(t, err)
	assert.Equal(t, "A1", got)

	_, err = NormalizeAnswerContent("   ")
	assert.True(t, IsValidationError(err))

	exact := strings.Repeat("a", MaxAnswerLength)
	got, err = NormalizeAnswerContent("  " + exact + "  ")
	require.NoError(t, err)
	assert.Equal(t, exact, got)

	_, err = NormalizeAnswerContent(exact + "b")
	assert.True(t, IsValidationError(err))
}

func TestNormalizeAnswerContentCountsCharactersNotBytes(t *testing.T) {
	content := strings.Repeat("é", MaxAnswerLength)
	got, err := NormalizeAnswerContent(content)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSearchFilterIsEmpty(t *testing.T) {
	assert.True(t, SearchFilter{}.IsEmpty())
	assert.False(t, SearchFilter{Title: "go"}.IsEmpty())
	assert.False(t, SearchFilter{Category: "math"}.IsEmpty())
}
