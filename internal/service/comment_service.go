package service

import (
	"context"
	"errors"

	"github.com/querytube/insight-services/internal/apperr"
	"github.com/querytube/insight-services/internal/metrics"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/sentiment"
	"github.com/querytube/insight-services/internal/validation"
	"github.com/querytube/insight-services/internal/youtube"
	"github.com/rs/zerolog"
)

// Client facing messages of the comment analyzer
const (
	MsgYouTubeNotConfigured = "YouTube API Key not configured. Please set YOUTUBE_API_KEY environment variable."
	MsgInvalidVideoURL      = "Invalid YouTube URL. Please provide a valid YouTube video link."
	MsgNoComments           = "No comments found for this video. The video may have comments disabled."
	MsgUnexpectedPrefix     = "Unexpected error: "
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	source     youtube.CommentSource
	keyPresent bool
	classifier *sentiment.Classifier
	log        zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(source youtube.CommentSource, keyPresent bool, classifier *sentiment.Classifier, log zerolog.Logger) *commentService {
	return &commentService{
		source:     source,
		keyPresent: keyPresent,
		classifier: classifier,
		log:        log.With().Str("service", "comments").Logger(),
	}
}

// Analyze resolves the video id, pages through its comments until the
// clamped limit is reached or pages run out, and scores each comment.
func (s *commentService) Analyze(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error) {
	if s.source == nil {
		return nil, apperr.New(apperr.KindNotConfigured, MsgYouTubeNotConfigured)
	}

	videoID, ok := validation.ExtractVideoID(req.URL)
	if !ok {
		return nil, apperr.New(apperr.KindInvalidInput, MsgInvalidVideoURL)
	}

	target := req.EffectiveLimit()
	s.log.Info().Str("video_id", videoID).Int("limit", target).Msg("Analyzing comments")

	records, err := s.collect(ctx, videoID, target)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, apperr.New(apperr.KindNotFound, MsgNoComments)
	}

	s.log.Info().Str("video_id", videoID).Int("comments", len(records)).Msg("Comments analyzed")
	return records, nil
}

// collect stops at exactly target records, when the pages run out, or
// when a page token repeats. Pages that come back empty but still carry a
// token are followed up to MaxCommentLimit requests in total.
func (s *commentService) collect(ctx context.Context, videoID string, target int) ([]models.CommentRecord, error) {
	records := make([]models.CommentRecord, 0, min(max(target, 0), models.MaxCommentPageSize))
	pageToken := ""

	for requests := 0; len(records) < target && requests < models.MaxCommentLimit; requests++ {
		page, err := s.source.ListComments(ctx, youtube.PageRequest{
			VideoID:    videoID,
			PageToken:  pageToken,
			MaxResults: min(models.MaxCommentPageSize, target-len(records)),
		})
		if err != nil {
			metrics.CommentPages.WithLabelValues("error").Inc()
			return nil, s.classify(videoID, err)
		}
		metrics.CommentPages.WithLabelValues("ok").Inc()

		for _, c := range page.Comments {
			if len(records) == target {
				break
			}
			category, polarity := s.classifier.Analyze(c.Text)
			metrics.CommentsAnalyzed.WithLabelValues(string(category)).Inc()
			records = append(records, models.CommentRecord{
				CommentID: c.ID,
				Text:      validation.TruncateText(c.Text, models.MaxCommentTextLength),
				Sentiment: category,
				Polarity:  polarity,
			})
		}

		if page.NextPageToken == "" || page.NextPageToken == pageToken {
			break
		}
		pageToken = page.NextPageToken
	}

	return records, nil
}

func (s *commentService) classify(videoID string, err error) error {
	classified := youtube.Classify(err)
	var ae *apperr.Error
	if !errors.As(classified, &ae) {
		// not an API error: transport failure, cancelled context, ...
		classified = apperr.Wrap(apperr.KindInternal, MsgUnexpectedPrefix+err.Error(), err)
	}
	kind := apperr.KindOf(classified)

	s.log.Warn().
		Err(err).
		Str("video_id", videoID).
		Str("kind", kind.String()).
		Msg("Comment fetch failed")
	return classified
}

// Health reports whether the YouTube client is usable
func (s *commentService) Health() models.CommentHealth {
	return models.CommentHealth{
		Status:               "Running",
		YouTubeAPIConfigured: s.source != nil,
		APIKeyPresent:        s.keyPresent,
	}
}
