package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NoSelection означает, что на текущий вопрос ещё не ответили
const NoSelection = -1

// OptionsPerQuestion - у каждого вопроса ровно четыре варианта
const OptionsPerQuestion = 4

var (
	ErrInvalidOption   = errors.New("option index out of range")
	ErrNotAnswered     = errors.New("no option selected for current question")
	ErrQuizFinished    = errors.New("quiz already finished")
	ErrInvalidQuestion = errors.New("invalid quiz question")
)

type QuizQuestion struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	// Response показывается после любого ответа, правильного или нет
	Response string
}

// Validate проверяет, что CorrectIndex указывает на существующий вариант
func (q QuizQuestion) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: want %d options, got %d", ErrInvalidQuestion, OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrInvalidQuestion, q.CorrectIndex)
	}
	return nil
}

// QuizResult - итог пройденной викторины
type QuizResult struct {
	Score int
	Total int
	Tier  Tier
}

type QuizSession struct {
	ID             uuid.UUID
	ChatID         int64
	Questions      []QuizQuestion
	CurrentIndex   int
	SelectedOption int
	Score          int
	IsFinished     bool

	onFinish func(QuizResult)
}

// NewQuizSession создаёт свежую сессию: первый вопрос, без ответа, ноль очков.
// onFinish вызывается ровно один раз при переходе в Finished, может быть nil.
func NewQuizSession(chatID int64, questions []QuizQuestion, onFinish func(QuizResult)) *QuizSession {
	return &QuizSession{
		ID:             uuid.New(),
		ChatID:         chatID,
		Questions:      questions,
		CurrentIndex:   0,
		SelectedOption: NoSelection,
		onFinish:       onFinish,
	}
}

func (s *QuizSession) Total() int {
	return len(s.Questions)
}

// Current возвращает показываемый вопрос
func (s *QuizSession) Current() QuizQuestion {
	return s.Questions[s.CurrentIndex]
}

func (s *QuizSession) Answered() bool {
	return s.SelectedOption != NoSelection
}

// Feedback возвращает текст отклика, если вариант уже выбран
func (s *QuizSession) Feedback() (string, bool) {
	if !s.Answered() {
		return "", false
	}
	return s.Current().Response, true
}

// SelectOption фиксирует выбор для текущего вопроса.
// Повторный выбор на тот же вопрос молча игнорируется: accepted == false.
func (s *QuizSession) SelectOption(optionIndex int) (accepted bool, err error) {
	if s.IsFinished {
		return false, ErrQuizFinished
	}
	q := s.Current()
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	if s.Answered() {
		return false, nil
	}

	s.SelectedOption = optionIndex
	if optionIndex == q.CorrectIndex {
		s.Score++
	}
	return true, nil
}

// Advance переходит к следующему вопросу или завершает викторину.
// finished == true только на том вызове, который перевёл сессию в Finished.
func (s *QuizSession) Advance() (finished bool, err error) {
	if s.IsFinished {
		return false, ErrQuizFinished
	}
	if !s.Answered() {
		return false, ErrNotAnswered
	}

	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
		s.SelectedOption = NoSelection
		return false, nil
	}

	s.IsFinished = true
	if s.onFinish != nil {
		s.onFinish(s.Result())
	}
	return true, nil
}

// Result считает итог по текущему счёту
func (s *QuizSession) Result() QuizResult {
	return QuizResult{
		Score: s.Score,
		Total: s.Total(),
		Tier:  ClassifyScore(s.Score, s.Total()),
	}
}
