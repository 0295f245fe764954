package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func waitCtx(ctx context.Context) { <-ctx.Done() }

func TestEffectsReplaceCancelsPrevious(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEffects(context.Background())
	defer e.Close()

	firstDone := make(chan struct{})
	e.Start(1, "slides", func(ctx context.Context) {
		<-ctx.Done()
		close(firstDone)
	})
	e.Start(1, "slides", waitCtx)

	select {
	case <-firstDone:
	case <-time.After(time.Second):
		t.Fatal("previous effect was not cancelled")
	}
	assert.True(t, e.Running(1, "slides"))
}

func TestEffectsStopOnlyTouchesChat(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEffects(context.Background())
	defer e.Close()

	e.Start(1, "letter", waitCtx)
	e.Start(1, "slides", waitCtx)
	e.Start(2, "letter", waitCtx)

	assert.Equal(t, 2, e.Stop(1))
	assert.Eventually(t, func() bool {
		return !e.Running(1, "letter") && !e.Running(1, "slides")
	}, time.Second, 5*time.Millisecond)
	assert.True(t, e.Running(2, "letter"))

	e.Cancel(2, "letter")
	assert.Eventually(t, func() bool { return !e.Running(2, "letter") }, time.Second, 5*time.Millisecond)
}

func TestEffectsFinishedEffectIsForgotten(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEffects(context.Background())
	var ran atomic.Bool
	e.Start(1, "confetti", func(context.Context) { ran.Store(true) })

	assert.Eventually(t, func() bool { return !e.Running(1, "confetti") }, time.Second, 5*time.Millisecond)
	assert.True(t, ran.Load())
	e.Close()
}

func TestEffectsCloseWaitsAndRejectsNew(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEffects(context.Background())
	var stopped atomic.Int32
	for chat := int64(1); chat <= 3; chat++ {
		e.Start(chat, "letter", func(ctx context.Context) {
			<-ctx.Done()
			stopped.Add(1)
		})
	}
	e.Close()
	assert.Equal(t, int32(3), stopped.Load())

	e.Start(4, "letter", waitCtx)
	assert.False(t, e.Running(4, "letter"))
}
