package service

// RevealFrames режет текст на растущие префиксы по runesPerFrame рун.
// Последний кадр всегда равен полному тексту.
func RevealFrames(text string, runesPerFrame int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if runesPerFrame <= 0 {
		runesPerFrame = 1
	}

	frames := make([]string, 0, (len(runes)+runesPerFrame-1)/runesPerFrame)
	for end := runesPerFrame; ; end += runesPerFrame {
		if end >= len(runes) {
			frames = append(frames, text)
			return frames
		}
		frames = append(frames, string(runes[:end]))
	}
}
