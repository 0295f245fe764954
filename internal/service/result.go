package service

type Tier string

const (
	TierPerfect     Tier = "perfect"
	TierClose       Tier = "close"
	TierEncouraging Tier = "encouraging"
)

type ResultMessage struct {
	Title   string
	Message string
}

var resultMessages = map[Tier]ResultMessage{
	TierPerfect: {
		Title:   "Perfect Score! 💯",
		Message: "You know me better than I know myself! We're truly soulmates.",
	},
	TierClose: {
		Title:   "So Close! 💕",
		Message: "You know me so well! But there's always more to discover together.",
	},
	TierEncouraging: {
		Title:   "Let's Learn More! 💗",
		Message: "Every answer doesn't matter — what matters is that we're together!",
	},
}

// ClassifyScore: 100% - perfect, от 60% - close, ниже - encouraging.
// Считаем в целых числах, чтобы граница 3/5 не зависела от float.
func ClassifyScore(score, total int) Tier {
	if total <= 0 {
		return TierEncouraging
	}
	switch {
	case score >= total:
		return TierPerfect
	case score*5 >= total*3:
		return TierClose
	default:
		return TierEncouraging
	}
}

func (t Tier) Message() ResultMessage {
	return resultMessages[t]
}

// Percentage как в старом лидерборде: целые проценты
func (r QuizResult) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Score * 100) / r.Total
}
