package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/PoluyanbIch/ValentineBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender - то, что нам нужно от *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Options struct {
	OwnerChatID         int64
	HeroConfettiDelay   time.Duration
	FinalConfettiDelay  time.Duration
	AnswerPause         time.Duration
	SlideInterval       time.Duration
	LetterFrameInterval time.Duration
	LetterRunesPerFrame int
	SectionPause        time.Duration
}

type Bot struct {
	api        Sender
	store      *service.ContentStore
	logger     *zap.Logger
	opts       Options
	effects    *service.Effects
	reporter   service.ResultReporter
	celebrator service.Celebrator
	reasons    *service.ReasonPicker

	// Только цикл обновлений
	quizSessions map[int64]*service.QuizSession
	players      map[int64]*musicPlayer
	// Празднование ждёт, пока уйдёт сообщение с итогом
	celebrations map[int64]func()

	// Слайдшоу трогают и цикл, и горутина /all
	mu         sync.Mutex
	slideshows map[int64]*slideView
}

func NewBot(api Sender, store *service.ContentStore, opts Options, logger *zap.Logger) *Bot {
	if opts.LetterRunesPerFrame <= 0 {
		opts.LetterRunesPerFrame = 60
	}

	b := &Bot{
		api:          api,
		store:        store,
		logger:       logger,
		opts:         opts,
		effects:      service.NewEffects(context.Background()),
		celebrator:   &chatCelebrator{api: api},
		reasons:      service.NewReasonPicker(nil),
		quizSessions: make(map[int64]*service.QuizSession),
		players:      make(map[int64]*musicPlayer),
		celebrations: make(map[int64]func()),
		slideshows:   make(map[int64]*slideView),
	}
	b.reporter = service.NewResultReporter(opts.OwnerChatID, b.notify)
	return b
}

// Run обрабатывает обновления по одному, пока не закроется канал или ctx
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	defer b.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// Close останавливает все эффекты и ждёт их горутины
func (b *Bot) Close() {
	b.effects.Close()
}

func (b *Bot) snapshot() *service.Snapshot {
	return b.store.Load()
}

func (b *Bot) notify(ctx context.Context, chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// pause ждёт d или отмены ctx; false - отменили
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type chatCelebrator struct {
	api Sender
}

func (c *chatCelebrator) Celebrate(ctx context.Context, chatID int64, burst service.Burst) error {
	_, err := c.api.Send(tgbotapi.NewMessage(chatID, service.RenderBurst(burst)))
	return err
}
