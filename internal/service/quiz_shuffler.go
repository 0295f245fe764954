package service

import (
	"math/rand"
	"time"
)

// Shuffle перемешивает копию среза, оригинал не меняется
func Shuffle[T any](items []T, r *rand.Rand) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	// Фишер-Йейтс
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ReasonPicker выдаёт случайные причины для /reason
type ReasonPicker struct {
	rnd *rand.Rand
}

func NewReasonPicker(r *rand.Rand) *ReasonPicker {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ReasonPicker{rnd: r}
}

// Pick перемешивает причины и возвращает только limit штук
func (p *ReasonPicker) Pick(reasons []Reason, limit int) []Reason {
	shuffled := Shuffle(reasons, p.rnd)

	if limit <= 0 || limit > len(shuffled) {
		limit = len(shuffled)
	}

	return shuffled[:limit]
}
