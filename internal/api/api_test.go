package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/querytube/insight-services/internal/api"
	"github.com/querytube/insight-services/internal/apperr"
	"github.com/querytube/insight-services/internal/config"
	"github.com/querytube/insight-services/internal/mocks"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/service"
	"github.com/querytube/insight-services/internal/validation"
	"github.com/querytube/insight-services/internal/youtube"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", RequestTimeout: 5 * time.Second},
	}
}

func setupAssistantRouter(cfg *config.Config) (*gin.Engine, *mocks.MockAskService) {
	gin.SetMode(gin.TestMode)
	mockAsk := mocks.NewMockAskService()
	router := api.NewAssistantRouter(&service.AssistantServices{Ask: mockAsk}, cfg, zerolog.Nop())
	return router, mockAsk
}

func setupSentimentRouter(cfg *config.Config) (*gin.Engine, *mocks.MockCommentService) {
	gin.SetMode(gin.TestMode)
	mockComments := mocks.NewMockCommentService()
	router := api.NewSentimentRouter(&service.SentimentServices{Comments: mockComments}, cfg, zerolog.Nop())
	return router, mockComments
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAsk_Success(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.AskFunc = func(ctx context.Context, question string) (*models.AskResponse, error) {
		return &models.AskResponse{
			SQL:     "SELECT country FROM sales",
			Results: models.QueryResult{Rows: []models.Row{{"country": "USA"}}},
			Summary: "Sales exist in the USA.",
		}, nil
	}

	w := postJSON(router, "/ask", `{"question": "Where do we sell?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SELECT country FROM sales", response["sql"])
	assert.Equal(t, "Sales exist in the USA.", response["summary"])
	rows := response["results"].([]interface{})
	assert.Equal(t, "USA", rows[0].(map[string]interface{})["country"])

	assert.Equal(t, []string{"Where do we sell?"}, mockAsk.Questions)
}

func TestAsk_ResultsAsErrorString(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.AskFunc = func(ctx context.Context, question string) (*models.AskResponse, error) {
		return &models.AskResponse{
			SQL:     "DROP TABLE sales",
			Results: models.QueryResult{Error: validation.ReadOnlyViolation},
			Summary: "That query was blocked.",
		}, nil
	}

	w := postJSON(router, "/ask", `{"question": "drop it"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, validation.ReadOnlyViolation, response["results"])
}

func TestAsk_MissingQuestion(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())

	for _, body := range []string{`{}`, `{"question": ""}`, `not json`} {
		w := postJSON(router, "/ask", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Empty(t, mockAsk.Questions)
}

func TestAsk_InvalidInputFromService(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.AskFunc = func(ctx context.Context, question string) (*models.AskResponse, error) {
		return nil, apperr.New(apperr.KindInvalidInput, "question is required")
	}

	w := postJSON(router, "/ask", `{"question": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsk_ServerError(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.AskFunc = func(ctx context.Context, question string) (*models.AskResponse, error) {
		return nil, errors.New("generate sql: model overloaded")
	}

	w := postJSON(router, "/ask", `{"question": "anything"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "generate sql: model overloaded", response["error"])
}

func TestAsk_RequestTimeoutApplied(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.AskFunc = func(ctx context.Context, question string) (*models.AskResponse, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "handler context should carry a deadline")
		return &models.AskResponse{}, nil
	}

	w := postJSON(router, "/ask", `{"question": "q"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssistantHealth(t *testing.T) {
	router, mockAsk := setupAssistantRouter(testConfig())
	mockAsk.HealthStatus.Database = "down"

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response models.AssistantHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Running", response.Status)
	assert.Equal(t, "down", response.Database)
}

func TestAnalyzeComments_Success(t *testing.T) {
	router, mockComments := setupSentimentRouter(testConfig())
	mockComments.AnalyzeFunc = func(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error) {
		return []models.CommentRecord{
			{CommentID: "c1", Text: "love it", Sentiment: models.SentimentPositive, Polarity: 0.6369},
			{CommentID: "c2", Text: "awful", Sentiment: models.SentimentNegative, Polarity: -0.4588},
		}, nil
	}

	w := postJSON(router, "/analyze_comments/", `{"url": "https://youtu.be/dQw4w9WgXcQ", "limit": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "c1", response[0]["comment_id"])
	assert.Equal(t, "love it", response[0]["text"])
	assert.Equal(t, "Positive", response[0]["sentiment"])
	assert.Equal(t, 0.6369, response[0]["polarity"])

	require.Len(t, mockComments.Requests, 1)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", mockComments.Requests[0].URL)
	assert.Equal(t, 2, mockComments.Requests[0].EffectiveLimit())
}

func TestAnalyzeComments_DefaultLimit(t *testing.T) {
	router, mockComments := setupSentimentRouter(testConfig())

	w := postJSON(router, "/analyze_comments/", `{"url": "dQw4w9WgXcQ"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockComments.Requests, 1)
	assert.Nil(t, mockComments.Requests[0].Limit)
	assert.Equal(t, models.DefaultCommentLimit, mockComments.Requests[0].EffectiveLimit())
}

func TestAnalyzeComments_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"invalid url", apperr.New(apperr.KindInvalidInput, service.MsgInvalidVideoURL), http.StatusBadRequest, service.MsgInvalidVideoURL},
		{"comments disabled", apperr.New(apperr.KindCommentsDisabled, youtube.MsgCommentsDisabled), http.StatusForbidden, youtube.MsgCommentsDisabled},
		{"quota exceeded", apperr.New(apperr.KindQuotaExceeded, youtube.MsgQuotaExceeded), http.StatusTooManyRequests, youtube.MsgQuotaExceeded},
		{"forbidden", apperr.New(apperr.KindForbidden, youtube.MsgForbidden), http.StatusForbidden, youtube.MsgForbidden},
		{"not found", apperr.New(apperr.KindNotFound, service.MsgNoComments), http.StatusNotFound, service.MsgNoComments},
		{"not configured", apperr.New(apperr.KindNotConfigured, service.MsgYouTubeNotConfigured), http.StatusInternalServerError, service.MsgYouTubeNotConfigured},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, service.MsgUnexpectedPrefix + "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockComments := setupSentimentRouter(testConfig())
			mockComments.AnalyzeFunc = func(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error) {
				return nil, tt.err
			}

			w := postJSON(router, "/analyze_comments/", `{"url": "x"}`)
			assert.Equal(t, tt.wantStatus, w.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantDetail, response["detail"])
		})
	}
}

func TestAnalyzeComments_BadBody(t *testing.T) {
	router, mockComments := setupSentimentRouter(testConfig())

	w := postJSON(router, "/analyze_comments/", `{"url": "x", "limit": "many"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockComments.Requests)
}

func TestSentimentHealth(t *testing.T) {
	router, mockComments := setupSentimentRouter(testConfig())
	mockComments.HealthStatus = models.CommentHealth{Status: "Running", YouTubeAPIConfigured: false, APIKeyPresent: false}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Running", response["status"])
	assert.Equal(t, false, response["youtube_api_configured"])
	assert.Equal(t, false, response["api_key_present"])
}

func TestIndexPages(t *testing.T) {
	assistant, _ := setupAssistantRouter(testConfig())
	sentiment, _ := setupSentimentRouter(testConfig())

	for _, router := range []*gin.Engine{assistant, sentiment} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("<html")))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupSentimentRouter(testConfig())
	postJSON(router, "/analyze_comments/", `{"url": "dQw4w9WgXcQ"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := setupAssistantRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupSentimentRouter(testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/analyze_comments/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	router, _ := setupSentimentRouter(cfg)

	first := postJSON(router, "/analyze_comments/", `{"url": "dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postJSON(router, "/analyze_comments/", `{"url": "dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
	assert.Equal(t, "rate limit exceeded", response["detail"])
}
