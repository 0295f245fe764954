package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayback struct {
	starts, stops int
	failStarts    int
}

func (f *fakePlayback) start(context.Context) error {
	f.starts++
	if f.failStarts > 0 {
		f.failStarts--
		return errors.New("blocked")
	}
	return nil
}

func (f *fakePlayback) stop(context.Context) error {
	f.stops++
	return nil
}

func TestAudioPlayerStartsOnFirstTrigger(t *testing.T) {
	ctx := context.Background()
	fp := &fakePlayback{}
	p := NewAudioPlayer(fp.start, fp.stop, DefaultTriggers())
	assert.Equal(t, NotStarted, p.State())

	started, err := p.Attempt(ctx, TriggerStartup)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, Playing, p.State())

	// Все триггеры сняты после старта
	for trig := range DefaultTriggers() {
		assert.False(t, p.Armed(trig), trig)
	}
	started, err = p.Attempt(ctx, TriggerCallback)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, 1, fp.starts)
}

func TestAudioPlayerFallsBackToInteraction(t *testing.T) {
	ctx := context.Background()
	fp := &fakePlayback{failStarts: 1}
	p := NewAudioPlayer(fp.start, fp.stop, DefaultTriggers())

	started, err := p.Attempt(ctx, TriggerStartup)
	assert.Error(t, err)
	assert.False(t, started)
	assert.Equal(t, NotStarted, p.State())

	// startup одноразовый
	assert.False(t, p.Armed(TriggerStartup))
	started, err = p.Attempt(ctx, TriggerStartup)
	assert.NoError(t, err)
	assert.False(t, started)

	started, err = p.Attempt(ctx, TriggerCallback)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, Playing, p.State())
	assert.Equal(t, 2, fp.starts)
}

func TestAudioPlayerGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	fp := &fakePlayback{failStarts: 100}
	p := NewAudioPlayer(fp.start, fp.stop, DefaultTriggers())

	for i := 0; i < 10; i++ {
		_, _ = p.Attempt(ctx, TriggerMessage)
	}
	assert.Equal(t, MaxAttempts, fp.starts)
	assert.Equal(t, NotStarted, p.State())
	assert.False(t, p.Armed(TriggerMessage))

	// Ручной запуск всё ещё возможен
	fp.failStarts = 0
	state, err := p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Playing, state)
}

func TestAudioPlayerToggle(t *testing.T) {
	ctx := context.Background()
	fp := &fakePlayback{}
	p := NewAudioPlayer(fp.start, fp.stop, DefaultTriggers())

	state, err := p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Playing, state)

	state, err = p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Paused, state)
	assert.Equal(t, 1, fp.stops)

	// Пауза не возвращает автозапуск
	started, err := p.Attempt(ctx, TriggerCommand)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, Paused, p.State())

	state, err = p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Playing, state)
	assert.Equal(t, 2, fp.starts)
}

func TestAudioPlayerWithoutBackend(t *testing.T) {
	p := NewAudioPlayer(nil, nil, DefaultTriggers())
	_, err := p.Attempt(context.Background(), TriggerStartup)
	assert.ErrorIs(t, err, ErrNoPlayback)
	assert.Equal(t, "not_started", p.State().String())
}
