package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentNote struct {
	chatID int64
	text   string
}

func TestNewResultReporterChoosesBackend(t *testing.T) {
	notify := func(context.Context, int64, string) error { return nil }

	assert.IsType(t, NoopReporter{}, NewResultReporter(0, notify))
	assert.IsType(t, NoopReporter{}, NewResultReporter(10, nil))
	assert.IsType(t, &OwnerReporter{}, NewResultReporter(10, notify))
}

func TestOwnerReporterSendsToOwner(t *testing.T) {
	var sent []sentNote
	r := NewResultReporter(10, func(_ context.Context, chatID int64, text string) error {
		sent = append(sent, sentNote{chatID, text})
		return nil
	})

	report := QuizReport{
		ChatID:     77,
		Username:   "sunshine",
		FirstName:  "Anna",
		Result:     QuizResult{Score: 4, Total: 5, Tier: TierClose},
		FinishedAt: time.Date(2026, 2, 14, 20, 30, 0, 0, time.UTC),
	}
	require.NoError(t, r.Report(context.Background(), report))
	require.Len(t, sent, 1)
	assert.Equal(t, int64(10), sent[0].chatID)
	assert.Contains(t, sent[0].text, "@sunshine")
	assert.Contains(t, sent[0].text, "4/5 (80%)")
	assert.Contains(t, sent[0].text, "So Close!")
	assert.Contains(t, sent[0].text, "14.02.2026 20:30")

	// Владелец проходит сам - не шлём
	report.ChatID = 10
	require.NoError(t, r.Report(context.Background(), report))
	assert.Len(t, sent, 1)
}

func TestFormatReportNameFallback(t *testing.T) {
	text := FormatReport(QuizReport{ChatID: 5, Result: QuizResult{Total: 5, Tier: TierEncouraging}})
	assert.Contains(t, text, "chat 5")

	text = FormatReport(QuizReport{ChatID: 5, FirstName: "Anna", Result: QuizResult{Total: 5, Tier: TierEncouraging}})
	assert.Contains(t, text, "Anna finished")
}
