// Package sentiment scores comment text and buckets the score into a category.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
	"github.com/querytube/insight-services/internal/models"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
	polarityPrecision = 1e4
)

// Scorer returns a polarity in [-1, 1] for text
type Scorer interface {
	Polarity(text string) float64
}

// VaderScorer scores text with the VADER lexicon
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the normalised VADER compound score
func (s *VaderScorer) Polarity(text string) float64 {
	return clamp(s.analyzer.PolarityScores(text).Compound)
}

// Classify buckets a raw polarity. Both thresholds are exclusive.
func Classify(polarity float64) models.Sentiment {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Round rounds polarity to four decimal places
func Round(polarity float64) float64 {
	return math.Round(polarity*polarityPrecision) / polarityPrecision
}

// Classifier combines a Scorer with the fixed thresholds
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a Classifier over scorer
func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Analyze classifies text on its unrounded polarity and returns the
// category with the rounded polarity.
func (c *Classifier) Analyze(text string) (models.Sentiment, float64) {
	p := c.scorer.Polarity(text)
	return Classify(p), Round(p)
}

func clamp(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(-1, math.Min(1, p))
}
