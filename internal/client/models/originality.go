package models

import "math"

// OriginalityReport is the backend verdict for a candidate project idea.
type OriginalityReport struct {
	IsOriginal      bool             `json:"is_original"`
	Message         string           `json:"message"`
	SimilarProjects []SimilarProject `json:"similar_projects"`
}

// SimilarProject is an existing approved project ranked by similarity.
// SimilarityScore lies in [0,1].
type SimilarProject struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SimilarityBand buckets a similarity score for display.
type SimilarityBand string

const (
	BandHigh   SimilarityBand = "high"
	BandMedium SimilarityBand = "medium"
	BandLow    SimilarityBand = "low"
)

// Band classifies the score: above 0.8 is high, above 0.6 medium.
func (p SimilarProject) Band() SimilarityBand {
	switch {
	case p.SimilarityScore > 0.8:
		return BandHigh
	case p.SimilarityScore > 0.6:
		return BandMedium
	default:
		return BandLow
	}
}

// Percent returns the score as a whole percentage.
func (p SimilarProject) Percent() int {
	return int(math.Round(p.SimilarityScore * 100))
}

// Weather is the ambient weather summary served by the backend.
type Weather struct {
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	City        string  `json:"city"`
}

// RoundedTemp returns the temperature rounded to the nearest degree.
func (w Weather) RoundedTemp() int {
	return int(math.Round(w.Temp))
}
