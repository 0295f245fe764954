package service

import (
	"context"
	"strings"
)

// Burst - параметры залпа конфетти
type Burst struct {
	ParticleCount int
	Spread        int
	OriginY       float64
	Colors        []string
}

var celebrationColors = []string{"#ec4899", "#f9a8d4", "#fb7185"}

var finalColors = []string{"#ec4899", "#f9a8d4", "#fb7185", "#fda4af"}

var (
	HeroBurst  = Burst{ParticleCount: 100, Spread: 70, OriginY: 0.6, Colors: celebrationColors}
	QuizBurst  = Burst{ParticleCount: 150, Spread: 80, OriginY: 0.6, Colors: celebrationColors}
	FinalBurst = Burst{ParticleCount: 200, Spread: 100, OriginY: 0.6, Colors: finalColors}
)

// Celebrator показывает залп; результат ядру не нужен
type Celebrator interface {
	Celebrate(ctx context.Context, chatID int64, b Burst) error
}

var colorGlyphs = map[string][]string{
	"#ec4899": {"💖", "🎉"},
	"#f9a8d4": {"🌸", "✨"},
	"#fb7185": {"🌹", "🎊"},
	"#fda4af": {"💗", "🌷"},
}

// RenderBurst рисует залп строками эмодзи: примерно одна частица из десяти,
// Spread задаёт ширину строки.
func RenderBurst(b Burst) string {
	count := b.ParticleCount / 10
	if count < 1 {
		count = 1
	}
	width := b.Spread / 10
	if width < 1 {
		width = 1
	}

	var glyphs []string
	for _, c := range b.Colors {
		glyphs = append(glyphs, colorGlyphs[strings.ToLower(c)]...)
	}
	if len(glyphs) == 0 {
		glyphs = []string{"🎉"}
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 && i%width == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(glyphs[i%len(glyphs)])
	}
	return sb.String()
}
