package models

// Sentiment is the category assigned to a comment
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

const (
	// DefaultCommentLimit applies when the request omits limit
	DefaultCommentLimit = 100

	// MaxCommentLimit caps how many comments one request may collect
	MaxCommentLimit = 1000

	// MaxCommentPageSize is the largest page the comments API serves
	MaxCommentPageSize = 100

	// MaxCommentTextLength is the number of characters kept per comment
	MaxCommentTextLength = 500
)

// AnalysisRequest is the body of POST /analyze_comments/
type AnalysisRequest struct {
	URL   string `json:"url"`
	Limit *int   `json:"limit,omitempty"`
}

// EffectiveLimit returns the requested limit, defaulted and clamped
func (r AnalysisRequest) EffectiveLimit() int {
	limit := DefaultCommentLimit
	if r.Limit != nil {
		limit = *r.Limit
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}
	return limit
}

// CommentRecord is one analysed comment
type CommentRecord struct {
	CommentID string    `json:"comment_id"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	Polarity  float64   `json:"polarity"`
}

// CommentHealth is the body of GET /health on the comment service
type CommentHealth struct {
	Status               string `json:"status"`
	YouTubeAPIConfigured bool   `json:"youtube_api_configured"`
	APIKeyPresent        bool   `json:"api_key_present"`
}

// AssistantHealth is the body of GET /health on the sql assistant
type AssistantHealth struct {
	Status          string `json:"status"`
	ModelConfigured bool   `json:"model_configured"`
	Database        string `json:"database"`
	Driver          string `json:"driver"`
}
