package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PoluyanbIch/ValentineBot/internal/config"
	"github.com/PoluyanbIch/ValentineBot/internal/logging"
	"github.com/PoluyanbIch/ValentineBot/internal/service"
	"github.com/PoluyanbIch/ValentineBot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "valentine",
	Short: "Valentine's card delivered as a Telegram bot",
	Long: `Sends a Valentine's card page by page: greeting, reasons, a love quiz,
a photo slideshow, videos, a typed letter and flowers, with music and confetti.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBot,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate config, content and questions without contacting Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := service.LoadSnapshot(cfg.Content.File, cfg.Content.QuestionsFile, logger)
		if err != nil {
			return err
		}
		tokenState := "set"
		if err := cfg.Validate(); err != nil {
			tokenState = err.Error()
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "token:     %s\n", tokenState)
		fmt.Fprintf(out, "questions: %d\n", len(snapshot.Questions))
		fmt.Fprintf(out, "reasons:   %d\n", len(snapshot.Content.Reasons))
		fmt.Fprintf(out, "slides:    %d\n", len(snapshot.Content.Slides))
		fmt.Fprintf(out, "videos:    %d\n", len(snapshot.Content.Videos))
		fmt.Fprintf(out, "music:     %s\n", snapshot.Content.Music.File)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot, err := service.LoadSnapshot(cfg.Content.File, cfg.Content.QuestionsFile, logger)
	if err != nil {
		return err
	}
	store := service.NewContentStore(snapshot)

	if err := tgbotapi.SetLogger(zap.NewStdLog(logger.Named("tgbotapi"))); err != nil {
		return err
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}
	api.Debug = cfg.Telegram.Debug
	logger.Info("Authorised on account", zap.String("username", api.Self.UserName))

	bot := telegram.NewBot(api, store, telegram.Options{
		OwnerChatID:         cfg.OwnerChatID,
		HeroConfettiDelay:   cfg.GetHeroConfettiDelay(),
		FinalConfettiDelay:  cfg.GetFinalConfettiDelay(),
		AnswerPause:         cfg.GetAnswerPause(),
		SlideInterval:       cfg.GetSlideInterval(),
		LetterFrameInterval: cfg.GetLetterFrameInterval(),
		LetterRunesPerFrame: cfg.Effects.LetterRunesPerFrame,
		SectionPause:        cfg.GetSectionPause(),
	}, logger)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Content.Watch {
		watcher, err := service.NewContentWatcher(store, cfg.Content.File, cfg.Content.QuestionsFile,
			cfg.GetWatchDebounce(), logger)
		if err != nil {
			logger.Warn("Content hot reload disabled", zap.Error(err))
		} else {
			g.Go(func() error { return watcher.Run(gctx) })
		}
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.UpdateTimeout
	updates := api.GetUpdatesChan(u)

	g.Go(func() error {
		<-gctx.Done()
		api.StopReceivingUpdates()
		return nil
	})
	g.Go(func() error {
		defer stop()
		return bot.Run(gctx, updates)
	})

	logger.Info("🤖 Bot is starting...")
	err = g.Wait()
	logger.Info("Bot stopped")
	return err
}
