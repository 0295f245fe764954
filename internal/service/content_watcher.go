package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ContentWatcher перечитывает контент и вопросы при изменении файлов
// и подменяет снимок в ContentStore.
type ContentWatcher struct {
	watcher       *fsnotify.Watcher
	store         *ContentStore
	contentPath   string
	questionsPath string
	debounce      time.Duration
	logger        *zap.Logger
}

func NewContentWatcher(store *ContentStore, contentPath, questionsPath string, debounce time.Duration, logger *zap.Logger) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	cw := &ContentWatcher{
		watcher:       w,
		store:         store,
		contentPath:   filepath.Clean(contentPath),
		questionsPath: filepath.Clean(questionsPath),
		debounce:      debounce,
		logger:        logger,
	}

	// Следим за каталогами: редакторы сохраняют через rename
	dirs := map[string]struct{}{
		filepath.Dir(cw.contentPath):   {},
		filepath.Dir(cw.questionsPath): {},
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return cw, nil
}

// Run блокируется до отмены ctx
func (cw *ContentWatcher) Run(ctx context.Context) error {
	defer cw.watcher.Close()

	ticker := time.NewTicker(cw.debounce / 2)
	defer ticker.Stop()

	var pending bool
	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if !cw.relevant(event) {
				continue
			}
			cw.logger.Debug("Content file changed",
				zap.String("file", event.Name), zap.String("op", event.Op.String()))
			pending = true
			lastEvent = time.Now()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			cw.logger.Error("Content watcher error", zap.Error(err))

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= cw.debounce {
				pending = false
				cw.reload()
			}
		}
	}
}

func (cw *ContentWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == cw.contentPath || name == cw.questionsPath
}

func (cw *ContentWatcher) reload() {
	snapshot, err := ReloadSnapshot(cw.contentPath, cw.questionsPath)
	if err != nil {
		// Оставляем старый снимок
		cw.logger.Error("Failed to reload content", zap.Error(err))
		return
	}
	cw.store.Swap(snapshot)
	cw.logger.Info("Content reloaded",
		zap.Int("questions", len(snapshot.Questions)),
		zap.Int("slides", len(snapshot.Content.Slides)))
}
