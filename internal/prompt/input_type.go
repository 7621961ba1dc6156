package prompt

import (
	"regexp"
	"strings"

	"novavision/internal/models"
)

// emotionKeywords flags text that expresses a feeling rather than describing
// a subject. Matching is by lowercase substring, first match wins.
var emotionKeywords = []string{
	// Direct emotion words
	"feel", "feeling", "felt", "mood", "emotion", "emotional",
	// Common emotion vocabulary
	"happy", "sad", "angry", "anxious", "excited", "calm", "peaceful",
	"stressed", "love", "hate", "fear", "joy", "joyful", "depressed",
	"hopeful", "worried", "nervous", "content", "miserable", "thrilled",
	"frustrated", "annoyed", "upset", "grateful", "proud", "ashamed",
	"lonely", "scared", "terrified", "delighted", "furious", "hurt",
	// First-person feeling phrases
	"i feel", "feeling like", "makes me feel",
}

// firstPersonFeeling matches short first-person statements of state: a
// pronoun followed somewhere later by a being/feeling verb with a single
// trailing word ("i am sad", "we have been lonely"). Longer continuations
// ("i am walking to the market") are descriptions, not feelings.
var firstPersonFeeling = regexp.MustCompile(`\b(i|we|my|me)\b.*\b(feel|am|was|been)\b\s+\w+$`)

// DetectInputType decides whether text expresses a feeling or describes a
// concrete object/scene. Pure best-effort heuristic, no I/O:
//  1. emotion keyword present -> emotion
//  2. first-person feeling pattern -> emotion
//  3. three words or fewer -> object (short phrases are literal)
//  4. default -> object
func DetectInputType(text string) models.InputType {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, kw := range emotionKeywords {
		if strings.Contains(lower, kw) {
			return models.InputTypeEmotion
		}
	}

	if firstPersonFeeling.MatchString(lower) {
		return models.InputTypeEmotion
	}

	if len(strings.Fields(lower)) <= 3 {
		return models.InputTypeObject
	}

	return models.InputTypeObject
}
