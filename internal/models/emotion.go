package models

// Emotion labels produced by the classification backend. The vocabulary is
// closed: every classification covers exactly these seven labels.
const (
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionAnger    = "anger"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
	EmotionNeutral  = "neutral"
)

// EmotionLabels lists the closed label vocabulary in a fixed order.
var EmotionLabels = []string{
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionSurprise,
	EmotionDisgust,
	EmotionNeutral,
}

// EmotionClassification is the result of classifying one text. Confidence is
// always the maximum value in AllEmotions, and AllEmotions carries one entry
// per label in the vocabulary.
type EmotionClassification struct {
	PrimaryEmotion string             `json:"primary_emotion"`
	Confidence     float64            `json:"confidence"`
	Valence        float64            `json:"valence"`
	Arousal        float64            `json:"arousal"`
	AllEmotions    map[string]float64 `json:"all_emotions"`
}
