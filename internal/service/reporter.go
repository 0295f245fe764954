package service

import (
	"context"
	"fmt"
	"time"
)

// QuizReport - кто и как прошёл викторину
type QuizReport struct {
	ChatID     int64
	Username   string
	FirstName  string
	Result     QuizResult
	FinishedAt time.Time
}

// ResultReporter сообщает автору открытки итог викторины. Ничего не хранит.
type ResultReporter interface {
	Report(ctx context.Context, r QuizReport) error
}

// NotifyFunc отправляет текст в чат
type NotifyFunc func(ctx context.Context, chatID int64, text string) error

// NewResultReporter автоматически выбирает владельца или заглушку
func NewResultReporter(ownerChatID int64, notify NotifyFunc) ResultReporter {
	if ownerChatID != 0 && notify != nil {
		return &OwnerReporter{ownerChatID: ownerChatID, notify: notify}
	}
	return NoopReporter{}
}

// OwnerReporter пишет итог в чат владельца
type OwnerReporter struct {
	ownerChatID int64
	notify      NotifyFunc
}

func (o *OwnerReporter) Report(ctx context.Context, r QuizReport) error {
	// Свой собственный проход владельцу не пересылаем
	if r.ChatID == o.ownerChatID {
		return nil
	}
	return o.notify(ctx, o.ownerChatID, FormatReport(r))
}

// NoopReporter - владелец не настроен
type NoopReporter struct{}

func (NoopReporter) Report(context.Context, QuizReport) error { return nil }

func FormatReport(r QuizReport) string {
	name := r.FirstName
	if r.Username != "" {
		name = "@" + r.Username
	}
	if name == "" {
		name = fmt.Sprintf("chat %d", r.ChatID)
	}

	return fmt.Sprintf("💌 %s finished the love quiz\n\n"+
		"📊 Score: %d/%d (%d%%)\n"+
		"%s\n"+
		"📅 %s",
		name, r.Result.Score, r.Result.Total, r.Result.Percentage(),
		r.Result.Tier.Message().Title,
		r.FinishedAt.Format("02.01.2006 15:04"))
}
