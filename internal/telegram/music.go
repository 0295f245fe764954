package telegram

import (
	"context"
	"errors"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// musicPlayer: "играть" - прислать трек, "пауза" - удалить его сообщение
type musicPlayer struct {
	*service.AudioPlayer
	messageID int
}

func (b *Bot) player(chatID int64) *musicPlayer {
	if p, ok := b.players[chatID]; ok {
		return p
	}

	p := &musicPlayer{}
	start := func(ctx context.Context) error {
		music := b.snapshot().Content.Music
		if music.File == "" {
			return service.ErrNoPlayback
		}
		audio := tgbotapi.NewAudio(chatID, mediaFile(music.File))
		audio.Title = music.Title
		audio.Performer = music.Performer
		audio.Caption = "🎵 " + music.Performer + " - " + music.Title
		m, err := b.api.Send(audio)
		if err != nil {
			return err
		}
		p.messageID = m.MessageID
		return nil
	}
	stop := func(ctx context.Context) error {
		if p.messageID == 0 {
			return nil
		}
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, p.messageID)); err != nil {
			return err
		}
		p.messageID = 0
		return nil
	}
	p.AudioPlayer = service.NewAudioPlayer(start, stop, service.DefaultTriggers())
	b.players[chatID] = p
	return p
}

// attemptMusic - автозапуск на любом взаимодействии, пока музыка не заиграла
func (b *Bot) attemptMusic(ctx context.Context, chatID int64, trigger service.Trigger) {
	if b.snapshot().Content.Music.File == "" {
		return
	}
	started, err := b.player(chatID).Attempt(ctx, trigger)
	if err != nil {
		b.logger.Warn("Music autoplay failed, will retry on next interaction",
			zap.Int64("chat_id", chatID), zap.String("trigger", string(trigger)), zap.Error(err))
		return
	}
	if started {
		b.logger.Info("Music started", zap.Int64("chat_id", chatID), zap.String("trigger", string(trigger)))
	}
}

func (b *Bot) toggleMusic(ctx context.Context, chatID int64) {
	state, err := b.player(chatID).Toggle(ctx)
	switch {
	case errors.Is(err, service.ErrNoPlayback):
		b.sendMessage(chatID, "🎵 No music today, just us")
		return
	case err != nil:
		b.logger.Error("Music toggle failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendMessage(chatID, "🎵 Couldn't switch the music, try again")
		return
	}

	if state == service.Paused {
		b.sendMessage(chatID, "⏸ Music paused")
	}
}

func (b *Bot) musicState(chatID int64) service.PlaybackState {
	if p, ok := b.players[chatID]; ok {
		return p.State()
	}
	return service.NotStarted
}
