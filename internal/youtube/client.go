package youtube

import (
	"context"
	"errors"
	"fmt"

	"github.com/querytube/insight-services/internal/config"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrNotConfigured is returned when no API key was supplied
var ErrNotConfigured = errors.New("youtube api key not configured")

// PageRequest identifies one page of top-level comment threads
type PageRequest struct {
	VideoID    string
	PageToken  string
	MaxResults int
}

// Comment is the part of a comment thread the analyzer needs
type Comment struct {
	ID   string
	Text string
}

// Page is one page of comments plus the cursor to the next page
type Page struct {
	Comments      []Comment
	NextPageToken string
}

// CommentSource lists comment threads for a video
type CommentSource interface {
	ListComments(ctx context.Context, req PageRequest) (*Page, error)
}

// Client lists comment threads through the YouTube Data API v3
type Client struct {
	service *yt.Service
	log     zerolog.Logger
}

// NewClient creates a YouTube API client from cfg
func NewClient(ctx context.Context, cfg config.YouTubeConfig, log zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating youtube service: %w", err)
	}

	return &Client{
		service: service,
		log:     log.With().Str("component", "youtube").Logger(),
	}, nil
}

// ListComments fetches one page of comment threads ordered by relevance
// in plain text format. Errors from the API are returned unwrapped so
// callers can inspect *googleapi.Error.
func (c *Client) ListComments(ctx context.Context, req PageRequest) (*Page, error) {
	call := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(req.VideoID).
		MaxResults(int64(req.MaxResults)).
		TextFormat("plainText").
		Order("relevance").
		Context(ctx)
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, err
	}

	page := &Page{
		Comments:      make([]Comment, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		page.Comments = append(page.Comments, Comment{
			ID:   item.Id,
			Text: item.Snippet.TopLevelComment.Snippet.TextDisplay,
		})
	}

	c.log.Debug().
		Str("video_id", req.VideoID).
		Int("items", len(page.Comments)).
		Bool("has_next", page.NextPageToken != "").
		Msg("Fetched comment page")

	return page, nil
}
