package telegram

import (
	"context"
	"strings"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !message.IsCommand() {
		b.sendMessage(chatID, "💌 Type /start to open your card")
		b.attemptMusic(ctx, chatID, service.TriggerMessage)
		return
	}

	switch message.Command() {
	case "start":
		b.sendHero(chatID)
		// Музыка идёт сразу за открыткой, меню - после неё
		b.attemptMusic(ctx, chatID, service.TriggerStartup)
		b.sendMainMenu(chatID)
		return
	case "menu":
		b.sendMainMenu(chatID)
	case "quiz":
		b.startQuiz(chatID, message.From)
	case "reasons":
		b.sendReasons(chatID)
	case "reason":
		b.sendRandomReason(chatID)
	case "memories":
		b.sendMemories(chatID)
	case "videos":
		b.sendVideos(chatID)
	case "letter":
		b.sendLetter(chatID)
	case "flowers":
		b.sendFlowers(chatID)
	case "music":
		b.toggleMusic(ctx, chatID)
		return
	case "all":
		b.sendWholePage(chatID)
	case "stop":
		n := b.effects.Stop(chatID)
		b.logger.Debug("Effects stopped", zap.Int64("chat_id", chatID), zap.Int("count", n))
		b.sendMessage(chatID, "✨ Animations stopped")
	default:
		b.sendMessage(chatID, "Unknown command 💭 Try /start")
	}
	b.attemptMusic(ctx, chatID, service.TriggerCommand)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackConfig); err != nil {
		b.logger.Warn("Error answering callback", zap.Error(err))
	}
	if callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	switch {
	case data == "music_toggle":
		b.toggleMusic(ctx, chatID)
		return
	case data == "quiz_again" || data == "section_quiz":
		b.startQuiz(chatID, callback.From)
	case strings.HasPrefix(data, "quiz_"):
		b.handleQuizAnswer(chatID, messageID, data)
	case strings.HasPrefix(data, "next_"):
		b.handleQuizNext(chatID, data)
	case data == "slide_prev":
		b.stepSlide(chatID, -1)
	case data == "slide_next":
		b.stepSlide(chatID, 1)
	case data == "menu":
		b.sendMainMenu(chatID)
	case data == "noop":
	case strings.HasPrefix(data, "section_"):
		b.sendSection(chatID, strings.TrimPrefix(data, "section_"))
	default:
		b.sendMessage(chatID, "Unknown command 💭")
	}
	b.attemptMusic(ctx, chatID, service.TriggerCallback)
}

func (b *Bot) sendSection(chatID int64, name string) {
	switch name {
	case "hero":
		b.sendHero(chatID)
	case "reasons":
		b.sendReasons(chatID)
	case "reason":
		b.sendRandomReason(chatID)
	case "memories":
		b.sendMemories(chatID)
	case "videos":
		b.sendVideos(chatID)
	case "letter":
		b.sendLetter(chatID)
	case "flowers":
		b.sendFlowers(chatID)
	case "all":
		b.sendWholePage(chatID)
	default:
		b.logger.Debug("Unknown section", zap.String("section", name))
	}
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "💝 <b>Your Valentine's card</b>\nPick a page, or open everything at once")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = b.mainMenuKeyboard(chatID)
	b.send(chatID, "menu", msg)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(chatID, "message", tgbotapi.NewMessage(chatID, text))
}

// send логирует ошибку и отдаёт отправленное сообщение
func (b *Bot) send(chatID int64, what string, c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	m, err := b.api.Send(c)
	if err != nil {
		b.logger.Error("Error sending "+what, zap.Int64("chat_id", chatID), zap.Error(err))
		return m, false
	}
	return m, true
}

func (b *Bot) request(chatID int64, what string, c tgbotapi.Chattable) bool {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Error("Error requesting "+what, zap.Int64("chat_id", chatID), zap.Error(err))
		return false
	}
	return true
}
