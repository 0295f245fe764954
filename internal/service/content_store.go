package service

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

// Snapshot - содержимое и вопросы, загруженные вместе
type Snapshot struct {
	Content   *Content
	Questions []QuizQuestion
}

// ContentStore отдаёт текущий снимок; Swap атомарно подменяет его целиком.
// Уже начатые сессии держат свой срез вопросов и замену не видят.
type ContentStore struct {
	current atomic.Pointer[Snapshot]
}

func NewContentStore(s *Snapshot) *ContentStore {
	cs := &ContentStore{}
	cs.current.Store(s)
	return cs
}

func (cs *ContentStore) Load() *Snapshot {
	return cs.current.Load()
}

func (cs *ContentStore) Swap(s *Snapshot) {
	cs.current.Store(s)
}

// LoadSnapshot собирает снимок при запуске: битый файл вопросов
// заменяется вопросами по умолчанию
func LoadSnapshot(contentPath, questionsPath string, logger *zap.Logger) (*Snapshot, error) {
	content, err := LoadContent(contentPath)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Content:   content,
		Questions: LoadQuizQuestions(questionsPath, logger),
	}, nil
}

// ReloadSnapshot - то же для горячей перезагрузки, но битый файл вопросов
// возвращает ошибку, и вызывающий оставляет старый снимок.
// Нет файла вопросов - вопросы по умолчанию, как и при запуске.
func ReloadSnapshot(contentPath, questionsPath string) (*Snapshot, error) {
	content, err := LoadContent(contentPath)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuizQuestions(questionsPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		questions = DefaultQuizQuestions()
	default:
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return &Snapshot{Content: content, Questions: questions}, nil
}
