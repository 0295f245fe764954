package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) startQuiz(chatID int64, user *tgbotapi.User) {
	questions := b.snapshot().Questions
	if len(questions) == 0 {
		b.sendMessage(chatID, "The quiz is empty today 💗")
		return
	}

	var player tgbotapi.User
	if user != nil {
		player = *user
	}

	session := service.NewQuizSession(chatID, questions, func(r service.QuizResult) {
		b.celebrations[chatID] = func() { b.celebrateQuiz(chatID, player, r) }
	})
	// Новая сессия вместо старой; старая просто выбрасывается
	b.quizSessions[chatID] = session
	b.logger.Info("Quiz started",
		zap.Int64("chat_id", chatID), zap.String("session_id", session.ID.String()))

	intro := tgbotapi.NewMessage(chatID, "💝 <b>How Well Do You Know Us?</b>\n<i>A little love quiz, just for fun</i>")
	intro.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "quiz intro", intro)
	b.sendQuestion(session)
}

func (b *Bot) sendQuestion(session *service.QuizSession) {
	text, kb := renderQuestion(session)
	msg := tgbotapi.NewMessage(session.ChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	b.send(session.ChatID, "question", msg)
}

// handleQuizAnswer: data = quiz_<вопрос>_<вариант>
func (b *Bot) handleQuizAnswer(chatID int64, messageID int, data string) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return
	}
	questionIndex, err1 := strconv.Atoi(parts[1])
	answerIndex, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return
	}

	session, exists := b.quizSessions[chatID]
	if !exists || session.IsFinished || questionIndex != session.CurrentIndex {
		// Кнопка от старого вопроса или старой сессии
		b.logger.Debug("Stale quiz answer", zap.Int64("chat_id", chatID), zap.String("data", data))
		return
	}

	accepted, err := session.SelectOption(answerIndex)
	if err != nil {
		b.logger.Warn("Rejected quiz answer",
			zap.Int64("chat_id", chatID), zap.String("session_id", session.ID.String()), zap.Error(err))
		return
	}
	if !accepted {
		return
	}

	text, kb := renderQuestion(session)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "answer", edit)
}

// handleQuizNext: data = next_<вопрос>
func (b *Bot) handleQuizNext(chatID int64, data string) {
	questionIndex, err := strconv.Atoi(strings.TrimPrefix(data, "next_"))
	if err != nil {
		return
	}

	session, exists := b.quizSessions[chatID]
	if !exists || questionIndex != session.CurrentIndex {
		return
	}

	finished, err := session.Advance()
	if err != nil {
		if !errors.Is(err, service.ErrQuizFinished) {
			b.logger.Warn("Rejected quiz advance",
				zap.Int64("chat_id", chatID), zap.String("session_id", session.ID.String()), zap.Error(err))
		}
		return
	}

	if !finished {
		time.Sleep(b.opts.AnswerPause)
		b.sendQuestion(session)
		return
	}

	b.logger.Info("Quiz finished",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID.String()),
		zap.Int("score", session.Score),
		zap.Int("total", session.Total()))

	msg := tgbotapi.NewMessage(chatID, renderResult(session.Result()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Play again", "quiz_again"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Menu", "menu"),
		),
	)
	b.send(chatID, "quiz result", msg)

	if celebrate, ok := b.celebrations[chatID]; ok {
		delete(b.celebrations, chatID)
		celebrate()
	}
}

// celebrateQuiz запускается один раз на сессию, после сообщения с итогом; ничего не ждём
func (b *Bot) celebrateQuiz(chatID int64, player tgbotapi.User, r service.QuizResult) {
	b.effects.Start(chatID, "quiz_confetti", func(ctx context.Context) {
		if err := b.celebrator.Celebrate(ctx, chatID, service.QuizBurst); err != nil {
			b.logger.Warn("Celebration failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
	b.effects.Start(chatID, "quiz_report", func(ctx context.Context) {
		report := service.QuizReport{
			ChatID:     chatID,
			Username:   player.UserName,
			FirstName:  player.FirstName,
			Result:     r,
			FinishedAt: time.Now(),
		}
		if err := b.reporter.Report(ctx, report); err != nil {
			b.logger.Warn("Quiz report failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
}

func renderQuestion(s *service.QuizSession) (string, tgbotapi.InlineKeyboardMarkup) {
	q := s.Current()

	var sb strings.Builder
	fmt.Fprintf(&sb, "❓ <b>Question %d of %d</b>  %s\n\n", s.CurrentIndex+1, s.Total(), progressDots(s))
	sb.WriteString("<b>" + html.EscapeString(q.Prompt) + "</b>")

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := fmt.Sprintf("%c. %s", 'A'+i, option)
		data := fmt.Sprintf("quiz_%d_%d", s.CurrentIndex, i)
		if s.Answered() {
			data = "noop"
			switch {
			case i == q.CorrectIndex:
				label = "✅ " + label
			case i == s.SelectedOption:
				label = "❌ " + label
			}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}

	if feedback, ok := s.Feedback(); ok {
		sb.WriteString("\n\n<i>" + html.EscapeString(feedback) + "</i>")

		next := "Next Question →"
		if s.CurrentIndex == s.Total()-1 {
			next = "See Results ✨"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(next, fmt.Sprintf("next_%d", s.CurrentIndex)),
		))
	}

	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// progressDots: пройденные и текущий - закрашены
func progressDots(s *service.QuizSession) string {
	var sb strings.Builder
	for i := 0; i < s.Total(); i++ {
		if i <= s.CurrentIndex {
			sb.WriteString("●")
		} else {
			sb.WriteString("○")
		}
	}
	return sb.String()
}

func renderResult(r service.QuizResult) string {
	m := r.Tier.Message()
	return fmt.Sprintf("💖 <b>%s</b>\n\n%d out of %d correct!\n\n%s",
		html.EscapeString(m.Title), r.Score, r.Total, html.EscapeString(m.Message))
}
