package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ParseQuizQuestions парсит вопросы из TXT файла.
// Формат строки: "вопрос" <индекс> | A | B | C | D | отклик
func ParseQuizQuestions(filename string) ([]QuizQuestion, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadQuizQuestions(file)
}

// ReadQuizQuestions читает вопросы из любого io.Reader
func ReadQuizQuestions(r io.Reader) ([]QuizQuestion, error) {
	var questions []QuizQuestion
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		question, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		questions = append(questions, question)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found in file")
	}

	return questions, nil
}

// parseQuestionLine парсит одну строку с вопросом
func parseQuestionLine(line string) (QuizQuestion, error) {
	if !strings.HasPrefix(line, `"`) {
		return QuizQuestion{}, fmt.Errorf("invalid format: question must start with a quote")
	}

	// Ищем закрывающую кавычку
	quoteEnd := strings.Index(line[1:], `"`) + 1
	if quoteEnd <= 0 {
		return QuizQuestion{}, fmt.Errorf("invalid format: no closing quote")
	}

	prompt := line[1:quoteEnd]
	if utf8.RuneCountInString(strings.TrimSpace(prompt)) == 0 {
		return QuizQuestion{}, fmt.Errorf("question cannot be empty")
	}

	// Остаток: <индекс> | A | B | C | D | отклик
	parts := strings.Split(line[quoteEnd+1:], "|")
	if len(parts) != OptionsPerQuestion+2 {
		return QuizQuestion{}, fmt.Errorf("want index, %d options and a response separated by '|', got %d fields",
			OptionsPerQuestion, len(parts))
	}

	correct, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("invalid correct index: %w", err)
	}

	options := make([]string, 0, OptionsPerQuestion)
	for _, opt := range parts[1 : OptionsPerQuestion+1] {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return QuizQuestion{}, fmt.Errorf("option cannot be empty")
		}
		options = append(options, opt)
	}

	q := QuizQuestion{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correct,
		Response:     strings.TrimSpace(parts[OptionsPerQuestion+1]),
	}
	if err := q.Validate(); err != nil {
		return QuizQuestion{}, err
	}
	return q, nil
}

// LoadQuizQuestions загружает вопросы из файла или возвращает дефолтные при ошибке
func LoadQuizQuestions(filename string, logger *zap.Logger) []QuizQuestion {
	questions, err := ParseQuizQuestions(filename)
	if err != nil {
		logger.Warn("Failed to load questions, using defaults",
			zap.String("file", filename), zap.Error(err))
		return DefaultQuizQuestions()
	}

	logger.Info("Loaded quiz questions",
		zap.String("file", filename), zap.Int("count", len(questions)))
	return questions
}

// DefaultQuizQuestions возвращает вопросы по умолчанию
func DefaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Prompt:       "What's the first thing I noticed about you?",
			Options:      []string{"Your eyes", "Your smile", "Your laugh", "Your voice"},
			CorrectIndex: 1,
			Response:     "That smile could light up any room! 😍",
		},
		{
			Prompt:       "What's our song?",
			Options:      []string{"Perfect - Ed Sheeran", "All of Me - John Legend", "Thinking Out Loud", "A Thousand Years"},
			CorrectIndex: 1,
			Response:     "Because ALL of me loves ALL of you! 🎵",
		},
		{
			Prompt:       "What's my favorite thing we do together?",
			Options:      []string{"Movie nights", "Cooking together", "Long walks", "Just talking for hours"},
			CorrectIndex: 3,
			Response:     "I could talk to you forever and never get bored 💬",
		},
		{
			Prompt:       "What do I love most about you?",
			Options:      []string{"Your kindness", "Your humor", "Your strength", "Everything!"},
			CorrectIndex: 3,
			Response:     "Trick question — it's literally everything about you! 💕",
		},
		{
			Prompt:       "Where do I dream of taking you?",
			Options:      []string{"Paris", "Maldives", "Japan", "Anywhere with you"},
			CorrectIndex: 3,
			Response:     "Home is wherever I'm with you 🌍❤️",
		},
	}
}
