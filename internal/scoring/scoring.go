package scoring

import (
	"fmt"
	"strings"

	"slate/internal/analysis"
)

// Component weights for the blended confidence score.
const (
	weightTechnical   = 0.3  // focus, exposure, blur
	weightAudio       = 0.25 // SNR, clipping, clarity
	weightScript      = 0.25 // matching dialogue
	weightPerformance = 0.2  // derived delivery signal
)

// Breakdown exposes the per-component scores plus the aliases the review UI
// renders (acting mirrors performance; timing blends audio and script).
type Breakdown struct {
	Technical   float64 `json:"technical"`
	Audio       float64 `json:"audio"`
	Script      float64 `json:"script"`
	Performance float64 `json:"performance"`
	Acting      float64 `json:"acting"`
	Timing      float64 `json:"timing"`
}

// Score is the output of the scoring algorithm.
type Score struct {
	Total     float64
	Breakdown Breakdown
	Summary   string
}

// Map renders the breakdown in the shape the metadata store persists, matching
// what a JSON round trip of the struct would produce.
func (b Breakdown) Map() map[string]any {
	return map[string]any{
		"technical":   b.Technical,
		"audio":       b.Audio,
		"script":      b.Script,
		"performance": b.Performance,
		"acting":      b.Acting,
		"timing":      b.Timing,
	}
}

// Compute blends the cv, audio, and nlp analysis results into a weighted
// confidence score and generates explainability traits.
func Compute(cv, audio, nlp analysis.Result) Score {
	techScore := cv.Float(analysis.KeyTechnicalScore, 50)
	audioScore := audio.Float(analysis.KeyQualityScore, 50)
	scriptScore := nlp.Float(analysis.KeySimilarity, 0.5) * 100

	// Performance is a derived signal: strong alignment implies a confident
	// delivery; with no alignment at all, visual analysis having run at all
	// is worth a baseline.
	perfScore := 0.0
	if similarity := nlp.Float(analysis.KeySimilarity, 0); similarity > 0 {
		if similarity > 0.8 {
			perfScore = 80
		} else {
			perfScore = 60
		}
	} else if cv.Float(analysis.KeyTechnicalScore, 0) > 0 {
		perfScore = 50
	}

	total := techScore*weightTechnical +
		audioScore*weightAudio +
		scriptScore*weightScript +
		perfScore*weightPerformance

	var traits []string
	if techScore > 80 {
		traits = append(traits, "Sharp focus and stable frame")
	}
	if audioScore > 80 {
		traits = append(traits, "Crystal clear audio")
	}
	if scriptScore > 90 {
		traits = append(traits, "Perfect script adherence")
	}
	if len(nlp.List(analysis.KeyAdLibs)) > 2 {
		traits = append(traits, "Significant creative ad-libs detected")
	}

	summary := fmt.Sprintf("Overall score: %.1f. ", total)
	if len(traits) > 0 {
		summary += "Key strengths: " + strings.Join(traits, ", ") + "."
	} else {
		summary += "Average performance with minor technical variances."
	}

	timing := 50.0
	if scriptScore > 0 {
		timing = (audioScore + scriptScore) / 2
	}

	return Score{
		Total: total,
		Breakdown: Breakdown{
			Technical:   techScore,
			Audio:       audioScore,
			Script:      scriptScore,
			Performance: perfScore,
			Acting:      perfScore,
			Timing:      timing,
		},
		Summary: summary,
	}
}
