package service

import (
	"context"
	"errors"
)

type PlaybackState int

const (
	NotStarted PlaybackState = iota
	Playing
	Paused
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "not_started"
	}
}

// Trigger - событие, на котором можно попробовать запустить музыку
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerCommand  Trigger = "command"
	TriggerCallback Trigger = "callback"
	TriggerMessage  Trigger = "message"
)

// MaxAttempts - сколько неудачных автозапусков допускаем до ручного Toggle
const MaxAttempts = 3

var ErrNoPlayback = errors.New("playback backend not configured")

// PlaybackFunc запускает или останавливает воспроизведение
type PlaybackFunc func(ctx context.Context) error

// AudioPlayer - автозапуск фоновой музыки с откатом на первое взаимодействие.
// Не потокобезопасен: принадлежит циклу обновлений.
type AudioPlayer struct {
	state    PlaybackState
	armed    map[Trigger]bool
	once     map[Trigger]bool
	attempts int
	start    PlaybackFunc
	stop     PlaybackFunc
}

// DefaultTriggers: startup срабатывает один раз, остальные до первого успеха
func DefaultTriggers() map[Trigger]bool {
	return map[Trigger]bool{
		TriggerStartup:  true,
		TriggerCommand:  false,
		TriggerCallback: false,
		TriggerMessage:  false,
	}
}

// NewAudioPlayer; triggers: триггер -> одноразовый ли он
func NewAudioPlayer(start, stop PlaybackFunc, triggers map[Trigger]bool) *AudioPlayer {
	p := &AudioPlayer{
		state: NotStarted,
		armed: make(map[Trigger]bool, len(triggers)),
		once:  make(map[Trigger]bool, len(triggers)),
		start: start,
		stop:  stop,
	}
	for t, once := range triggers {
		p.armed[t] = true
		p.once[t] = once
	}
	return p
}

func (p *AudioPlayer) State() PlaybackState {
	return p.state
}

func (p *AudioPlayer) Armed(t Trigger) bool {
	return p.armed[t]
}

// Attempt делает одну попытку старта, если плеер ещё не запускался
// и триггер взведён. started == true только при успешном старте.
func (p *AudioPlayer) Attempt(ctx context.Context, t Trigger) (started bool, err error) {
	if p.state != NotStarted || !p.armed[t] || p.attempts >= MaxAttempts {
		return false, nil
	}
	if p.once[t] {
		p.armed[t] = false
	}

	p.attempts++
	if err := p.play(ctx); err != nil {
		if p.attempts >= MaxAttempts {
			p.disarm()
		}
		return false, err
	}
	return true, nil
}

// Toggle: играет - пауза, иначе - старт
func (p *AudioPlayer) Toggle(ctx context.Context) (PlaybackState, error) {
	if p.state == Playing {
		if p.stop == nil {
			return p.state, ErrNoPlayback
		}
		if err := p.stop(ctx); err != nil {
			return p.state, err
		}
		p.state = Paused
		return p.state, nil
	}

	if err := p.play(ctx); err != nil {
		return p.state, err
	}
	return p.state, nil
}

func (p *AudioPlayer) play(ctx context.Context) error {
	if p.start == nil {
		return ErrNoPlayback
	}
	if err := p.start(ctx); err != nil {
		return err
	}
	p.state = Playing
	p.disarm()
	return nil
}

func (p *AudioPlayer) disarm() {
	for t := range p.armed {
		p.armed[t] = false
	}
}
