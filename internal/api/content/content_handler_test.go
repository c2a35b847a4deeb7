package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerationResult), args.Error(1)
}

func (m *MockContentService) Enhance(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerationResult), args.Error(1)
}

func (m *MockContentService) Options(ctx context.Context) types.ContentOptions {
	args := m.Called(ctx)
	return args.Get(0).(types.ContentOptions)
}

func newTestHandler(mode string) (*HandlerImpl, *MockContentService) {
	svc := new(MockContentService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, logger, mode), svc
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/content/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestGenerateContent_Success(t *testing.T) {
	h, svc := newTestHandler("development")
	result := &types.GenerationResult{Content: "Kia ora", Success: true, Cached: true, Provider: types.ProviderTemplate}
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(r *types.GenerationRequest) bool {
		return r.Platform == types.PlatformInstagram && r.UserData.Story == "Ko Tāne"
	})).Return(result, nil).Once()

	rr := post(h.GenerateContent, `{"platform":"instagram","userData":{"story":"Ko Tāne"}}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var got types.GenerationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Kia ora", got.Content)
	assert.True(t, got.Cached)
	svc.AssertExpectations(t)
}

func TestGenerateContent_AcceptsExtraUserDataKeys(t *testing.T) {
	h, svc := newTestHandler("development")
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(r *types.GenerationRequest) bool {
		return r.UserData.Story == "Ko Tane waka trip on the river" && string(r.UserData.Extra["photo"]) == `"data:image/jpeg;base64,AAAA"`
	})).Return(&types.GenerationResult{Content: "Kia ora", Success: true}, nil).Once()

	rr := post(h.GenerateContent, `{"platform":"instagram","userData":{"story":"Ko Tane waka trip on the river","photo":"data:image/jpeg;base64,AAAA"}}`)

	require.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestGenerateContent_RejectsUnknownTopLevelKey(t *testing.T) {
	h, svc := newTestHandler("development")

	rr := post(h.GenerateContent, `{"platform":"instagram","colour":"blue","userData":{"story":"x"}}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Error, `unknown key "colour"`)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateContent_BadBody(t *testing.T) {
	h, svc := newTestHandler("development")

	rr := post(h.GenerateContent, `{"platform":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeError(t, rr)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "Invalid request body")
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateContent_ErrorMapping(t *testing.T) {
	providerErr := &types.ProviderError{Provider: types.ProviderClaude, StatusCode: http.StatusTooManyRequests, Body: `{"error":"rate_limit"}`}
	timeoutErr := &types.TimeoutError{Provider: types.ProviderClaude, Elapsed: 30 * time.Second, Timeout: 30 * time.Second}

	tests := []struct {
		name        string
		mode        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{"validation", "production", &types.ValidationError{Field: "prompt", Message: "is required"}, http.StatusBadRequest, "prompt: is required", ""},
		{"configuration", "production", &types.ConfigurationError{Setting: "ANTHROPIC_API_KEY", Reason: "is not set"}, http.StatusInternalServerError, "configuration error: ANTHROPIC_API_KEY is not set", ""},
		{"provider status dev", "development", providerErr, http.StatusTooManyRequests, providerErr.Error(), `{"error":"rate_limit"}`},
		{"provider status prod", "production", providerErr, http.StatusTooManyRequests, msgProviderFailed, ""},
		{"timeout dev", "development", timeoutErr, http.StatusGatewayTimeout, "claude request timed out after 30.0 seconds", ""},
		{"timeout prod", "production", timeoutErr, http.StatusGatewayTimeout, msgTimeout, ""},
		{"missing content", "production", &types.MissingContentError{Provider: types.ProviderClaude}, http.StatusInternalServerError, msgNoContent, ""},
		{"unexpected dev", "development", errors.New("boom"), http.StatusInternalServerError, msgUnexpected, "boom"},
		{"unexpected prod", "production", errors.New("boom"), http.StatusInternalServerError, msgUnexpected, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(tt.mode)
			svc.On("Generate", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rr := post(h.GenerateContent, `{"prompt":"x"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			body := decodeError(t, rr)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantError, body.Error)
			if tt.name == "timeout dev" {
				assert.Contains(t, body.Details, "timed out")
			} else {
				assert.Equal(t, tt.wantDetails, body.Details)
			}
		})
	}
}

func TestGenerateContent_MissingKeyEndToEnd(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(&types.ConfigurationError{Setting: "ANTHROPIC_API_KEY", Reason: "is not set"})
	h := NewHandler(f.service, slog.New(slog.NewTextHandler(io.Discard, nil)), "development")

	rr := post(h.GenerateContent, `{"prompt":"Write about a food tour","platforms":["facebook"],"formats":["blog"]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decodeError(t, rr).Error, "ANTHROPIC_API_KEY")
	f.claude.AssertNumberOfCalls(t, "Generate", 0)
}

func TestEnhanceContent(t *testing.T) {
	h, svc := newTestHandler("development")
	svc.On("Enhance", mock.Anything, mock.MatchedBy(func(r *types.GenerationRequest) bool {
		return r.Provider == types.ProviderGemini
	})).Return(&types.GenerationResult{Content: "better", Success: true, Provider: types.ProviderGemini, GeminiOptimized: true}, nil).Once()

	rr := post(h.EnhanceContent, `{"prompt":"x","provider":"gemini"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"geminiOptimized":true`)
	svc.AssertExpectations(t)
}

func TestGetOptions(t *testing.T) {
	h, svc := newTestHandler("development")
	svc.On("Options", mock.Anything).Return(types.ContentOptions{
		Platforms: []types.Platform{types.PlatformInstagram},
		Locations: []string{"rotorua"},
	}).Once()

	rr := httptest.NewRecorder()
	h.GetOptions(rr, httptest.NewRequest(http.MethodGet, "/api/v1/content/options", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got types.ContentOptions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, []string{"rotorua"}, got.Locations)
}
