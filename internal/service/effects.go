package service

import (
	"context"
	"sync"
)

type effectKey struct {
	chatID int64
	name   string
}

type runningEffect struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Effects владеет таймерными эффектами чатов: автопрокрутка слайдов,
// печать письма, отложенное конфетти. Один эффект на (чат, имя).
type Effects struct {
	mu      sync.Mutex
	parent  context.Context
	cancel  context.CancelFunc
	running map[effectKey]*runningEffect
	wg      sync.WaitGroup
	closed  bool
}

func NewEffects(ctx context.Context) *Effects {
	parent, cancel := context.WithCancel(ctx)
	return &Effects{
		parent:  parent,
		cancel:  cancel,
		running: make(map[effectKey]*runningEffect),
	}
}

// Start отменяет эффект с тем же именем в чате и запускает fn в горутине
func (e *Effects) Start(chatID int64, name string, fn func(ctx context.Context)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	key := effectKey{chatID: chatID, name: name}
	if prev, ok := e.running[key]; ok {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(e.parent)
	eff := &runningEffect{cancel: cancel, done: make(chan struct{})}
	e.running[key] = eff

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer close(eff.done)
		defer cancel()
		defer e.forget(key, eff)
		fn(ctx)
	}()
}

// Cancel останавливает один эффект чата
func (e *Effects) Cancel(chatID int64, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if eff, ok := e.running[effectKey{chatID: chatID, name: name}]; ok {
		eff.cancel()
	}
}

// Stop останавливает все эффекты чата
func (e *Effects) Stop(chatID int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for key, eff := range e.running {
		if key.chatID == chatID {
			eff.cancel()
			n++
		}
	}
	return n
}

func (e *Effects) Running(chatID int64, name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.running[effectKey{chatID: chatID, name: name}]
	return ok
}

// Close отменяет всё и ждёт завершения горутин
func (e *Effects) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Effects) forget(key effectKey, eff *runningEffect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Эффект мог быть уже заменён новым с тем же ключом
	if cur, ok := e.running[key]; ok && cur == eff {
		delete(e.running, key)
	}
}
