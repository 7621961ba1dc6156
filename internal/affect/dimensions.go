// Package affect maps discrete emotion labels onto the circumplex model of
// affect (Russell, 1980): valence in [-1, 1], arousal in [0, 1].
package affect

// Dimensions is a point in valence/arousal space.
type Dimensions struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// dimensionTable covers the closed 7-label vocabulary.
var dimensionTable = map[string]Dimensions{
	"joy":      {Valence: 0.8, Arousal: 0.7},
	"sadness":  {Valence: -0.7, Arousal: 0.3},
	"anger":    {Valence: -0.6, Arousal: 0.9},
	"fear":     {Valence: -0.8, Arousal: 0.8},
	"surprise": {Valence: 0.3, Arousal: 0.9},
	"disgust":  {Valence: -0.5, Arousal: 0.5},
	"neutral":  {Valence: 0.0, Arousal: 0.3},
}

// unknownDimensions is returned for labels outside the table. Note this is
// not the table's "neutral" entry (arousal 0.3): the two defaults diverge and
// callers must not conflate them.
var unknownDimensions = Dimensions{Valence: 0.0, Arousal: 0.5}

// DimensionsFor looks up the dimensional affect for an emotion label. It has
// no side effects and no failure modes; unrecognized labels resolve to the
// unknown-label fallback.
func DimensionsFor(label string) Dimensions {
	if d, ok := dimensionTable[label]; ok {
		return d
	}
	return unknownDimensions
}
