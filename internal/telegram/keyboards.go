package telegram

import (
	"strings"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) mainMenuKeyboard(chatID int64) tgbotapi.InlineKeyboardMarkup {
	music := "🎵 Play music"
	if b.musicState(chatID) == service.Playing {
		music = "⏸ Pause music"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💕 Why I Love You", "section_reasons"),
			tgbotapi.NewInlineKeyboardButtonData("💝 Love Quiz", "section_quiz"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📸 Memories", "section_memories"),
			tgbotapi.NewInlineKeyboardButtonData("🎬 Our Moments", "section_videos"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💌 A Letter", "section_letter"),
			tgbotapi.NewInlineKeyboardButtonData("💐 Flowers", "section_flowers"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Open everything", "section_all"),
			tgbotapi.NewInlineKeyboardButtonData(music, "music_toggle"),
		),
	)
}

func slideKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀", "slide_prev"),
			tgbotapi.NewInlineKeyboardButtonData("▶", "slide_next"),
		),
	)
}

// mediaFile: ссылка, file_id:<id> или путь к файлу
func mediaFile(ref string) tgbotapi.RequestFileData {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return tgbotapi.FileURL(ref)
	case strings.HasPrefix(ref, "file_id:"):
		return tgbotapi.FileID(strings.TrimPrefix(ref, "file_id:"))
	default:
		return tgbotapi.FilePath(ref)
	}
}
