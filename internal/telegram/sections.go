package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram не принимает больше 10 файлов в одном альбоме
const mediaGroupLimit = 10

const letterCursor = "▍"

var reasonIcons = []string{"😊", "❤️", "✨", "⭐", "☕", "❤️"}

const floatingHearts = "💗 💕 💖 💝 💘 💓 💞 💗"

func (b *Bot) sendHero(chatID int64) {
	hero := b.snapshot().Content.Hero

	msg := tgbotapi.NewMessage(chatID, renderHero(hero))
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "hero", msg)

	delay := b.opts.HeroConfettiDelay
	b.effects.Start(chatID, "hero_confetti", func(ctx context.Context) {
		if !pause(ctx, delay) {
			return
		}
		if err := b.celebrator.Celebrate(ctx, chatID, service.HeroBurst); err != nil {
			b.logger.Warn("Hero confetti failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
}

func renderHero(h service.Hero) string {
	return fmt.Sprintf("%s\n\n❤️ <b>%s</b>\n<b>%s</b>\n\n%s",
		floatingHearts, html.EscapeString(h.Title), html.EscapeString(h.Subtitle), html.EscapeString(h.Tagline))
}

func (b *Bot) sendReasons(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, renderReasons(b.snapshot().Content.Reasons))
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "reasons", msg)
}

func renderReasons(reasons []service.Reason) string {
	var sb strings.Builder
	sb.WriteString("💕 <b>Why I Love You</b>\n<i>Just a few of the countless reasons...</i>")
	for i, r := range reasons {
		fmt.Fprintf(&sb, "\n\n%s <b>%s</b>\n%s",
			reasonIcons[i%len(reasonIcons)], html.EscapeString(r.Title), html.EscapeString(r.Description))
	}
	return sb.String()
}

func (b *Bot) sendRandomReason(chatID int64) {
	picked := b.reasons.Pick(b.snapshot().Content.Reasons, 1)
	if len(picked) == 0 {
		b.sendMessage(chatID, "💕 Too many reasons to pick just one")
		return
	}
	r := picked[0]
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("💕 <b>%s</b>\n%s",
		html.EscapeString(r.Title), html.EscapeString(r.Description)))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💕 One more", "section_reason"),
		),
	)
	b.send(chatID, "reason", msg)
}

// slideView - одна карусель в чате и её сообщение
type slideView struct {
	show      *service.Slideshow
	messageID int
}

func (b *Bot) sendMemories(chatID int64) {
	slides := b.snapshot().Content.Slides
	if len(slides) == 0 {
		return
	}

	view := &slideView{show: service.NewSlideshow(slides)}
	idx, slide := view.show.Current()

	photo := tgbotapi.NewPhoto(chatID, mediaFile(slide.Image))
	photo.Caption = slideCaption(idx, view.show.Len(), slide)
	photo.ReplyMarkup = slideKeyboard()
	m, ok := b.send(chatID, "slide", photo)
	if !ok {
		return
	}
	view.messageID = m.MessageID

	b.mu.Lock()
	b.slideshows[chatID] = view
	b.mu.Unlock()

	// Автопрокрутка: один полный круг, до первого ручного нажатия
	interval := b.opts.SlideInterval
	b.effects.Start(chatID, "slides", func(ctx context.Context) {
		for i := 0; i < view.show.Len(); i++ {
			if !pause(ctx, interval) {
				return
			}
			idx, slide := view.show.Next()
			b.editSlide(chatID, view, idx, slide)
		}
	})
}

func (b *Bot) stepSlide(chatID int64, delta int) {
	b.mu.Lock()
	view, ok := b.slideshows[chatID]
	b.mu.Unlock()
	if !ok {
		return
	}

	b.effects.Cancel(chatID, "slides")

	var idx int
	var slide service.Slide
	if delta < 0 {
		idx, slide = view.show.Prev()
	} else {
		idx, slide = view.show.Next()
	}
	b.editSlide(chatID, view, idx, slide)
}

func (b *Bot) editSlide(chatID int64, view *slideView, idx int, slide service.Slide) {
	media := tgbotapi.NewInputMediaPhoto(mediaFile(slide.Image))
	media.Caption = slideCaption(idx, view.show.Len(), slide)

	kb := slideKeyboard()
	edit := tgbotapi.EditMessageMediaConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      chatID,
			MessageID:   view.messageID,
			ReplyMarkup: &kb,
		},
		Media: media,
	}
	b.request(chatID, "slide edit", edit)
}

func slideCaption(idx, total int, s service.Slide) string {
	return fmt.Sprintf("%s\n\n📸 %d/%d", s.Caption, idx+1, total)
}

func (b *Bot) sendVideos(chatID int64) {
	videos := b.snapshot().Content.Videos
	if len(videos) == 0 {
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🎬 <b>Relive Our Moments</b>\n<i>Some memories are better in motion</i>")
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "videos header", msg)

	for _, group := range videoGroups(videos) {
		files := make([]interface{}, 0, len(group))
		for _, v := range group {
			media := tgbotapi.NewInputMediaVideo(mediaFile(v.URL))
			media.Caption = v.Title
			files = append(files, media)
		}
		// Альбом возвращает массив сообщений, поэтому Request, а не Send
		b.request(chatID, "videos", tgbotapi.NewMediaGroup(chatID, files))
	}
}

func videoGroups(videos []service.Video) [][]service.Video {
	var groups [][]service.Video
	for start := 0; start < len(videos); start += mediaGroupLimit {
		end := start + mediaGroupLimit
		if end > len(videos) {
			end = len(videos)
		}
		groups = append(groups, videos[start:end])
	}
	return groups
}

func (b *Bot) sendLetter(chatID int64) {
	letter := b.snapshot().Content.Letter
	frames := service.RevealFrames(letter.Text, b.opts.LetterRunesPerFrame)
	if len(frames) == 0 {
		return
	}

	header := tgbotapi.NewMessage(chatID, fmt.Sprintf("💌 <b>%s</b>\n<i>%s</i>",
		html.EscapeString(letter.Title), html.EscapeString(letter.Subtitle)))
	header.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "letter header", header)

	b.request(chatID, "typing", tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	m, ok := b.send(chatID, "letter", tgbotapi.NewMessage(chatID, letterFrame(frames, 0)))
	if !ok || len(frames) == 1 {
		return
	}

	interval := b.opts.LetterFrameInterval
	b.effects.Start(chatID, "letter", func(ctx context.Context) {
		for i := 1; i < len(frames); i++ {
			if !pause(ctx, interval) {
				// Отменили - показываем письмо целиком, без курсора
				b.send(chatID, "letter", tgbotapi.NewEditMessageText(chatID, m.MessageID, letter.Text))
				return
			}
			b.send(chatID, "letter", tgbotapi.NewEditMessageText(chatID, m.MessageID, letterFrame(frames, i)))
		}
	})
}

// letterFrame добавляет мигающий курсор ко всем кадрам, кроме последнего
func letterFrame(frames []string, i int) string {
	if i == len(frames)-1 {
		return frames[i]
	}
	return frames[i] + letterCursor
}

func (b *Bot) sendFlowers(chatID int64) {
	content := b.snapshot().Content

	sent := false
	if content.Bouquet.Image != "" {
		anim := tgbotapi.NewAnimation(chatID, mediaFile(content.Bouquet.Image))
		anim.Caption = content.Bouquet.Caption
		_, sent = b.send(chatID, "bouquet", anim)
	}
	if !sent {
		b.sendMessage(chatID, content.Bouquet.Caption+"\n\n💐🌹🌷🌸🌺💐")
	}

	final := tgbotapi.NewMessage(chatID, renderFinal(content.Final))
	final.ParseMode = tgbotapi.ModeHTML
	if _, ok := b.send(chatID, "final", final); !ok {
		return
	}

	delay := b.opts.FinalConfettiDelay
	b.effects.Start(chatID, "final_confetti", func(ctx context.Context) {
		if !pause(ctx, delay) {
			return
		}
		if err := b.celebrator.Celebrate(ctx, chatID, service.FinalBurst); err != nil {
			b.logger.Warn("Final confetti failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
}

func renderFinal(f service.Final) string {
	return fmt.Sprintf("❤️ <b>%s</b>\n\n%s\n\n✨ ❤️ ✨", html.EscapeString(f.Title), html.EscapeString(f.Text))
}

func (b *Bot) sendFooter(chatID int64) {
	footer := b.snapshot().Content.Footer
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n<i>%s</i>",
		html.EscapeString(footer.Line), html.EscapeString(footer.Signature)))
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(chatID, "footer", msg)
}

// sendWholePage шлёт все секции по порядку страницы в отдельной горутине.
// Викторину только предлагаем кнопкой: её сессия живёт в цикле обновлений.
func (b *Bot) sendWholePage(chatID int64) {
	between := b.opts.SectionPause
	b.effects.Start(chatID, "page", func(ctx context.Context) {
		steps := []func(){
			func() { b.sendHero(chatID) },
			func() { b.sendReasons(chatID) },
			func() { b.sendQuizInvite(chatID) },
			func() { b.sendMemories(chatID) },
			func() { b.sendVideos(chatID) },
			func() { b.sendLetter(chatID) },
			func() { b.sendFlowers(chatID) },
			func() { b.sendFooter(chatID) },
		}
		for i, step := range steps {
			if i > 0 && !pause(ctx, between) {
				return
			}
			step()
		}
	})
}

func (b *Bot) sendQuizInvite(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "💝 <b>How Well Do You Know Us?</b>\n<i>A little love quiz, just for fun</i>")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💝 Start the quiz", "section_quiz"),
		),
	)
	b.send(chatID, "quiz invite", msg)
}
