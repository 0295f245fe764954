package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrongIndex(q QuizQuestion) int {
	return (q.CorrectIndex + 1) % len(q.Options)
}

func TestNewQuizSessionInitialState(t *testing.T) {
	s := NewQuizSession(42, DefaultQuizQuestions(), nil)

	assert.Equal(t, int64(42), s.ChatID)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, NoSelection, s.SelectedOption)
	assert.Equal(t, 0, s.Score)
	assert.False(t, s.IsFinished)
	assert.Equal(t, 5, s.Total())
	assert.NotEqual(t, s.ID, NewQuizSession(42, DefaultQuizQuestions(), nil).ID)

	_, ok := s.Feedback()
	assert.False(t, ok)
}

func TestSelectOptionScoresCorrectAnswer(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)
	q := s.Current()

	accepted, err := s.SelectOption(q.CorrectIndex)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, q.CorrectIndex, s.SelectedOption)
	assert.Equal(t, 1, s.Score)

	fb, ok := s.Feedback()
	assert.True(t, ok)
	assert.Equal(t, q.Response, fb)
}

func TestSelectOptionWrongAnswerStillShowsFeedback(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)
	q := s.Current()

	accepted, err := s.SelectOption(wrongIndex(q))
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, 0, s.Score)

	fb, ok := s.Feedback()
	assert.True(t, ok)
	assert.Equal(t, q.Response, fb)
}

func TestSelectOptionTwiceIsIgnored(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	_, err := s.SelectOption(0)
	require.NoError(t, err)
	selected, score := s.SelectedOption, s.Score

	accepted, err := s.SelectOption(2)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, selected, s.SelectedOption)
	assert.Equal(t, score, s.Score)
}

func TestSelectOptionTwiceAfterCorrectDoesNotDoubleScore(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)
	correct := s.Current().CorrectIndex

	_, _ = s.SelectOption(correct)
	_, _ = s.SelectOption(correct)
	assert.Equal(t, 1, s.Score)
}

func TestSelectOptionInvalidIndex(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	for _, idx := range []int{-1, 4, 100} {
		accepted, err := s.SelectOption(idx)
		assert.ErrorIs(t, err, ErrInvalidOption)
		assert.False(t, accepted)
	}
	assert.Equal(t, NoSelection, s.SelectedOption)
	assert.Equal(t, 0, s.Score)
}

func TestAdvanceBeforeSelectIsRejected(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	finished, err := s.Advance()
	assert.ErrorIs(t, err, ErrNotAnswered)
	assert.False(t, finished)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.False(t, s.IsFinished)
}

func TestAdvanceIncrementsByOne(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	for want := 1; want < s.Total(); want++ {
		_, err := s.SelectOption(0)
		require.NoError(t, err)
		finished, err := s.Advance()
		require.NoError(t, err)
		assert.False(t, finished)
		assert.Equal(t, want, s.CurrentIndex)
		assert.Equal(t, NoSelection, s.SelectedOption)
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	for !s.IsFinished {
		_, _ = s.SelectOption(s.Current().CorrectIndex)
		_, _ = s.SelectOption(wrongIndex(s.Current()))
		assert.GreaterOrEqual(t, s.Score, 0)
		assert.LessOrEqual(t, s.Score, s.Total())
		_, err := s.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, s.Total(), s.Score)
}

func TestAllCorrectIsPerfect(t *testing.T) {
	var results []QuizResult
	s := NewQuizSession(1, DefaultQuizQuestions(), func(r QuizResult) {
		results = append(results, r)
	})

	for i := 0; i < s.Total(); i++ {
		_, err := s.SelectOption(s.Current().CorrectIndex)
		require.NoError(t, err)
		finished, err := s.Advance()
		require.NoError(t, err)
		assert.Equal(t, i == s.Total()-1, finished)
	}

	assert.True(t, s.IsFinished)
	assert.Equal(t, 5, s.Score)
	assert.Equal(t, s.Total()-1, s.CurrentIndex)
	assert.Equal(t, TierPerfect, s.Result().Tier)
	require.Len(t, results, 1)
	assert.Equal(t, QuizResult{Score: 5, Total: 5, Tier: TierPerfect}, results[0])
}

func TestFirstWrongThenCorrectIsClose(t *testing.T) {
	s := NewQuizSession(1, DefaultQuizQuestions(), nil)

	_, err := s.SelectOption(wrongIndex(s.Current()))
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)

	for !s.IsFinished {
		_, err := s.SelectOption(s.Current().CorrectIndex)
		require.NoError(t, err)
		_, err = s.Advance()
		require.NoError(t, err)
	}

	r := s.Result()
	assert.Equal(t, 4, r.Score)
	assert.Equal(t, 80, r.Percentage())
	assert.Equal(t, TierClose, r.Tier)
}

func TestFinishedIsTerminal(t *testing.T) {
	calls := 0
	s := NewQuizSession(1, DefaultQuizQuestions(), func(QuizResult) { calls++ })
	for !s.IsFinished {
		_, _ = s.SelectOption(0)
		_, _ = s.Advance()
	}
	idx, score := s.CurrentIndex, s.Score

	_, err := s.SelectOption(1)
	assert.ErrorIs(t, err, ErrQuizFinished)
	finished, err := s.Advance()
	assert.ErrorIs(t, err, ErrQuizFinished)
	assert.False(t, finished)

	assert.Equal(t, idx, s.CurrentIndex)
	assert.Equal(t, score, s.Score)
	assert.Equal(t, 1, calls)
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score, total int
		want         Tier
	}{
		{5, 5, TierPerfect},
		{4, 5, TierClose},
		{3, 5, TierClose},
		{2, 5, TierEncouraging},
		{0, 5, TierEncouraging},
		{0, 0, TierEncouraging},
		{6, 10, TierClose},
		{5, 10, TierEncouraging},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyScore(tt.score, tt.total), "%d/%d", tt.score, tt.total)
	}
}

func TestTierMessages(t *testing.T) {
	assert.Equal(t, "Perfect Score! 💯", TierPerfect.Message().Title)
	assert.Equal(t, "So Close! 💕", TierClose.Message().Title)
	assert.Equal(t, "Let's Learn More! 💗", TierEncouraging.Message().Title)
	for _, tier := range []Tier{TierPerfect, TierClose, TierEncouraging} {
		assert.NotEmpty(t, tier.Message().Message)
	}
}

func TestQuizQuestionValidate(t *testing.T) {
	for _, q := range DefaultQuizQuestions() {
		assert.NoError(t, q.Validate())
	}

	bad := []QuizQuestion{
		{Prompt: "", Options: []string{"a", "b", "c", "d"}},
		{Prompt: "q", Options: []string{"a", "b"}},
		{Prompt: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 4},
		{Prompt: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: -1},
	}
	for _, q := range bad {
		assert.ErrorIs(t, q.Validate(), ErrInvalidQuestion)
	}
}
