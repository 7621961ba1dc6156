// Package prompt turns user text plus an emotion classification into a
// generation prompt: input-type detection, style presets, emotion-to-scene
// templates and quality/anti-artifact modifiers.
package prompt

import (
	"fmt"
	"strings"

	"novavision/internal/models"
)

// Style is one of the five fixed visual-aesthetic presets.
type Style string

const (
	StylePhotorealistic Style = "photorealistic"
	StyleArtistic       Style = "artistic"
	StyleAbstract       Style = "abstract"
	StyleNature         Style = "nature"
	StyleDreamscape     Style = "dreamscape"
)

// ResolveStyle matches a caller-supplied style name case-insensitively
// against the presets. Unknown names fall back to photorealistic.
func ResolveStyle(name string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(name))) {
	case StyleArtistic:
		return StyleArtistic
	case StyleAbstract:
		return StyleAbstract
	case StyleNature:
		return StyleNature
	case StyleDreamscape:
		return StyleDreamscape
	default:
		return StylePhotorealistic
	}
}

// Descriptor returns the prompt modifier text for the preset.
func (s Style) Descriptor() string {
	switch s {
	case StyleArtistic:
		return "masterpiece digital artwork, trending on artstation, highly detailed, " +
			"concept art by greg rutkowski and alphonse mucha, smooth gradients, " +
			"vibrant colors, dramatic lighting, illustration, award-winning art"
	case StyleAbstract:
		return "abstract modern art, geometric shapes, bold contrasting colors, " +
			"contemporary gallery art, minimalist composition, artistic expression, " +
			"museum quality, fine art print"
	case StyleNature:
		return "professional nature photography, National Geographic quality, " +
			"golden hour cinematic lighting, ultra detailed landscape, " +
			"shot on Hasselblad, vivid colors, atmospheric perspective, 8k"
	case StyleDreamscape:
		return "surreal fantasy dreamscape, ethereal glowing atmosphere, " +
			"digital art masterpiece, trending on artstation, concept art, " +
			"imaginative world, volumetric lighting, magical realism"
	default:
		return "hyperrealistic photograph, shot on Canon EOS R5, 85mm f/1.4 lens, " +
			"professional studio lighting, DSLR quality, ultra sharp, lifelike, " +
			"natural skin texture, ray tracing, ambient occlusion, 8k UHD resolution"
	}
}

// sceneFor maps an emotion label to an evocative scene template. Unknown
// labels take the neutral scene.
func sceneFor(emotion string) string {
	switch emotion {
	case models.EmotionJoy:
		return "radiant golden sunlit meadow with blooming wildflowers, warm summer day, happiness"
	case models.EmotionSadness:
		return "misty rain-soaked forest at twilight, melancholic atmosphere, soft blue tones"
	case models.EmotionAnger:
		return "dramatic thunderstorm with lightning strikes, intense red and orange sky, powerful"
	case models.EmotionFear:
		return "mysterious fog-shrouded landscape, dark shadows, eerie pale moonlight, suspense"
	case models.EmotionSurprise:
		return "spectacular burst of colorful aurora lights, electric energy, wonder"
	case models.EmotionDisgust:
		return "abstract organic textures, murky swamp atmosphere, unsettling greens"
	default:
		return "peaceful zen garden at dawn, balanced composition, serene tranquility"
	}
}

// Quality and anti-artifact modifiers appended to every prompt.
const (
	qualityBase = "masterpiece, best quality, ultra high definition, extremely detailed, " +
		"sharp focus, professional, intricate details"

	realismEnhancers = "hyperrealistic, photorealistic, lifelike, volumetric lighting, " +
		"subsurface scattering, ray tracing, ambient occlusion, 8k resolution"

	antiWatermark = "clean image, no watermark, no text, no logo, no signature, no banner"
)

// NegativePrompt enumerates artifacts the backend must avoid. It is the same
// fixed string for every request.
const NegativePrompt = "watermark, logo, text, signature, letters, words, writing, brand, stamp, " +
	"overlay, banner, copyright, trademark, username, website, url, " +
	"blurry, low quality, distorted, deformed, ugly, bad anatomy, " +
	"cropped, out of frame, duplicate, error, jpeg artifacts, lowres"

// Build composes the final prompt and negative prompt from user text, its
// emotion classification and a style name. Pure and deterministic: identical
// inputs yield byte-identical output.
func Build(text string, classification *models.EmotionClassification, styleName string) models.PromptArtifact {
	style := ResolveStyle(styleName)
	inputType := DetectInputType(text)

	var p string
	if inputType == models.InputTypeEmotion {
		scene := sceneFor(classification.PrimaryEmotion)
		p = fmt.Sprintf("%s, inspired by the feeling of '%s', %s, %s, %s, %s, atmospheric, evocative, cinematic",
			scene, text, style.Descriptor(), qualityBase, realismEnhancers, antiWatermark)
	} else if style == StylePhotorealistic {
		p = fmt.Sprintf("%s, %s, %s, %s, %s, award-winning photography, cinematic composition",
			text, style.Descriptor(), qualityBase, realismEnhancers, antiWatermark)
	} else {
		p = fmt.Sprintf("%s, %s, %s, %s, highly detailed, professional quality",
			text, style.Descriptor(), qualityBase, antiWatermark)
	}

	return models.PromptArtifact{
		Prompt:         p,
		NegativePrompt: NegativePrompt,
		InputType:      inputType,
	}
}
