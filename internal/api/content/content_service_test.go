package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-content/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-content/internal/api/detector"
	generativeAI "github.com/FACorreiaa/go-tourism-content/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tourism-content/internal/api/prompt"
	"github.com/FACorreiaa/go-tourism-content/internal/api/templates"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// MockClient is a mock implementation of generativeAI.Client
type MockClient struct {
	mock.Mock
	provider types.Provider
}

func (m *MockClient) Provider() types.Provider { return m.provider }
func (m *MockClient) Model() string            { return "mock-model" }

func (m *MockClient) Configured() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Generate(ctx context.Context, params generativeAI.GenerateParams) (*generativeAI.Completion, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generativeAI.Completion), args.Error(1)
}

// MockInteractionRepo is a mock implementation of llmInteraction.LLmInteractionRepository
type MockInteractionRepo struct {
	mock.Mock
}

func (m *MockInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

type serviceFixture struct {
	service *ContentServiceImpl
	claude  *MockClient
	openai  *MockClient
	gemini  *MockClient
	repo    *MockInteractionRepo
}

func setupContentServiceTest(t *testing.T) serviceFixture {
	t.Helper()
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := serviceFixture{
		claude: &MockClient{provider: types.ProviderClaude},
		openai: &MockClient{provider: types.ProviderOpenAI},
		gemini: &MockClient{provider: types.ProviderGemini},
		repo:   new(MockInteractionRepo),
	}
	settings := DefaultSettings()
	settings.CacheDelay = 0

	f.service = NewContentService(
		templates.NewDefault(),
		detector.NewDefault(),
		prompt.DefaultLookups(),
		generativeAI.NewRegistry(f.claude, f.openai, f.gemini),
		f.repo,
		metrics.Get(),
		settings,
		logger,
	)
	return f
}

func completion(text string, provider types.Provider) *generativeAI.Completion {
	return &generativeAI.Completion{
		Text:     text,
		Provider: provider,
		Model:    "mock-model",
		Elapsed:  120 * time.Millisecond,
		Usage:    generativeAI.Usage{InputTokens: 42, OutputTokens: 17},
	}
}

func TestGenerate_ServesCachedTemplate(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(nil)
	story := "Ko Tāne was amazing, we took a waka on the river"

	result, err := f.service.Generate(context.Background(), &types.GenerationRequest{
		Platform: types.PlatformInstagram,
		UserData: types.UserData{Story: story},
	})
	require.NoError(t, err)

	tmpl, ok := templates.NewDefault().Lookup(types.PlatformInstagram, types.BucketWaka)
	require.True(t, ok)

	assert.True(t, result.Cached)
	assert.Equal(t, types.ProviderTemplate, result.Provider)
	assert.Equal(t, templates.Personalize(tmpl, story), result.Content)
	assert.True(t, strings.HasSuffix(result.Content, tmpl))
	assert.True(t, result.Detection.SubjectMatched)
	assert.Equal(t, types.BucketWaka, result.Detection.Bucket)
	assert.Equal(t, 1, result.Metadata.PlatformCount)

	f.claude.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything)
}

func TestGenerate_CallsPrimaryProvider(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(nil)
	f.claude.On("Generate", mock.Anything, mock.MatchedBy(func(p generativeAI.GenerateParams) bool {
		return strings.HasPrefix(p.Prompt, "Write about a food tour\n\n") &&
			strings.Contains(p.Prompt, "Platforms: facebook") &&
			strings.Contains(p.Prompt, "Formats: blog") &&
			p.MaxTokens == 1500 &&
			p.Timeout == 30*time.Second
	})).Return(completion("Taste the best of Canterbury.", types.ProviderClaude), nil).Once()
	f.repo.On("SaveInteraction", mock.Anything, mock.MatchedBy(func(i types.LlmInteraction) bool {
		return i.ResponseText == "Taste the best of Canterbury." && i.TokenLimit == 1500 && i.LatencyMs == 120 &&
			i.InputTokens == 42 && i.OutputTokens == 17
	})).Return(nil).Once()

	result, err := f.service.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    "Write about a food tour",
		Platforms: []types.Platform{types.PlatformFacebook},
		Formats:   []types.Format{types.FormatBlog},
	})
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Equal(t, "Taste the best of Canterbury.", result.Content)
	assert.Equal(t, types.ProviderClaude, result.Provider)
	assert.True(t, result.ClaudeOptimized)
	assert.Equal(t, 1, result.Metadata.PlatformCount)
	assert.Equal(t, 1, result.Metadata.FormatCount)
	assert.Equal(t, 1500, result.Metadata.TokenLimit)
	assert.False(t, result.Detection.SubjectMatched)

	f.claude.AssertNumberOfCalls(t, "Generate", 1)
	f.repo.AssertExpectations(t)
}

func TestGenerate_PlatformListWithPromptSkipsTemplates(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(nil)
	instruction := "Write a 1000-word blog article about our Ko Tāne evening"
	f.claude.On("Generate", mock.Anything, mock.MatchedBy(func(p generativeAI.GenerateParams) bool {
		return strings.HasPrefix(p.Prompt, instruction+"\n\n") &&
			strings.Contains(p.Prompt, "Platforms: facebook") &&
			strings.Contains(p.Prompt, "Formats: blog") &&
			p.MaxTokens == 1500
	})).Return(completion("A long evening at Ko Tāne.", types.ProviderClaude), nil).Once()
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.service.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    instruction,
		Platforms: []types.Platform{types.PlatformFacebook},
		Formats:   []types.Format{types.FormatBlog},
	})
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Equal(t, types.ProviderClaude, result.Provider)
	assert.Equal(t, "A long evening at Ko Tāne.", result.Content)
	assert.True(t, result.Detection.SubjectMatched)
	assert.Equal(t, []types.Format{types.FormatBlog}, result.Formats)
	f.claude.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerate_MissingKeyFailsBeforeAnyWork(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(&types.ConfigurationError{Setting: "ANTHROPIC_API_KEY", Reason: "is not set"})

	_, err := f.service.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    "Write about a food tour",
		Platforms: []types.Platform{types.PlatformFacebook},
	})

	var cfgErr *types.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 500, cfgErr.HTTPStatus())
	f.claude.AssertNumberOfCalls(t, "Generate", 0)
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   *types.GenerationRequest
		field string
	}{
		{"standard path needs a prompt", &types.GenerationRequest{Platforms: []types.Platform{types.PlatformFacebook, types.PlatformTwitter}}, "prompt"},
		{"unknown platform", &types.GenerationRequest{Prompt: "x", Platforms: []types.Platform{"myspace"}}, "platforms"},
		{"unknown single platform", &types.GenerationRequest{Platform: "myspace"}, "platform"},
		{"unknown format", &types.GenerationRequest{Prompt: "x", Formats: []types.Format{"haiku"}}, "formats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupContentServiceTest(t)
			f.claude.On("Configured").Return(nil)

			_, err := f.service.Generate(context.Background(), tt.req)

			var valErr *types.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			f.claude.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerate_MobilePathWithoutTemplate(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(nil)
	f.claude.On("Generate", mock.Anything, mock.MatchedBy(func(p generativeAI.GenerateParams) bool {
		return strings.Contains(p.Prompt, "Write a short tiktok post") && p.MaxTokens == 500 && p.Timeout == 15*time.Second
	})).Return(completion("Short copy", types.ProviderClaude), nil).Once()
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil).Once()

	// subject recognized but no tiktok template exists
	result, err := f.service.Generate(context.Background(), &types.GenerationRequest{
		Platform: types.PlatformTikTok,
		UserData: types.UserData{Story: "Ko Tane waka trip"},
	})
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.True(t, result.Metadata.MobileOptimized)
	assert.Equal(t, 500, result.Metadata.TokenLimit)
}

func TestGenerate_TokenClamp(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, 1500},
		{-20, 1500},
		{1, 1},
		{800, 800},
		{4096, 4096},
		{10000, 4096},
	}
	for _, tt := range tests {
		f := setupContentServiceTest(t)
		f.claude.On("Configured").Return(nil)
		f.claude.On("Generate", mock.Anything, mock.MatchedBy(func(p generativeAI.GenerateParams) bool {
			return p.MaxTokens == tt.want
		})).Return(completion("ok", types.ProviderClaude), nil).Once()
		f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil)

		requested := tt.requested
		result, err := f.service.Generate(context.Background(), &types.GenerationRequest{Prompt: "x", MaxTokens: &requested})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Metadata.TokenLimit)
	}
}

func TestGenerate_ProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", &types.TimeoutError{Provider: types.ProviderClaude, Elapsed: 30 * time.Second, Timeout: 30 * time.Second}},
		{"provider status", &types.ProviderError{Provider: types.ProviderClaude, StatusCode: 429, Body: "rate limited"}},
		{"missing content", &types.MissingContentError{Provider: types.ProviderClaude}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupContentServiceTest(t)
			f.claude.On("Configured").Return(nil)
			f.claude.On("Generate", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			result, err := f.service.Generate(context.Background(), &types.GenerationRequest{Prompt: "x"})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.err)
			f.repo.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerate_InteractionLogFailureIsIgnored(t *testing.T) {
	f := setupContentServiceTest(t)
	f.claude.On("Configured").Return(nil)
	f.claude.On("Generate", mock.Anything, mock.Anything).Return(completion("ok", types.ProviderClaude), nil).Once()
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	result, err := f.service.Generate(context.Background(), &types.GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Content)
}

func TestGenerate_CacheDelayHonoursCancellation(t *testing.T) {
	f := setupContentServiceTest(t)
	f.service.settings.CacheDelay = time.Minute
	f.claude.On("Configured").Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Generate(ctx, &types.GenerationRequest{
		Platform: types.PlatformInstagram,
		UserData: types.UserData{Story: "Ko Tāne waka"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnhance(t *testing.T) {
	t.Run("defaults to openai with standard prompt", func(t *testing.T) {
		f := setupContentServiceTest(t)
		f.openai.On("Configured").Return(nil)
		f.openai.On("Generate", mock.Anything, mock.MatchedBy(func(p generativeAI.GenerateParams) bool {
			return strings.HasPrefix(p.Prompt, "Promote Ko Tāne\n\n") && p.Timeout == 30*time.Second
		})).Return(completion("Enhanced", types.ProviderOpenAI), nil).Once()
		f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil).Once()

		// a template exists for this request, but enhancement never uses it
		result, err := f.service.Enhance(context.Background(), &types.GenerationRequest{
			Prompt:   "Promote Ko Tāne",
			Platform: types.PlatformInstagram,
			UserData: types.UserData{Story: "Ko Tāne waka on the river"},
		})
		require.NoError(t, err)
		assert.False(t, result.Cached)
		assert.True(t, result.OpenAIOptimized)
		assert.Equal(t, types.ProviderOpenAI, result.Provider)
		f.claude.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("gemini on request", func(t *testing.T) {
		f := setupContentServiceTest(t)
		f.gemini.On("Configured").Return(nil)
		f.gemini.On("Generate", mock.Anything, mock.Anything).Return(completion("Gemini", types.ProviderGemini), nil).Once()
		f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.service.Enhance(context.Background(), &types.GenerationRequest{Prompt: "x", Provider: types.ProviderGemini})
		require.NoError(t, err)
		assert.True(t, result.GeminiOptimized)
	})

	t.Run("missing key", func(t *testing.T) {
		f := setupContentServiceTest(t)
		f.openai.On("Configured").Return(&types.ConfigurationError{Setting: "OPENAI_API_KEY", Reason: "is not set"})

		_, err := f.service.Enhance(context.Background(), &types.GenerationRequest{Prompt: "x"})
		var cfgErr *types.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		f.openai.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("prompt required", func(t *testing.T) {
		f := setupContentServiceTest(t)
		f.openai.On("Configured").Return(nil)

		_, err := f.service.Enhance(context.Background(), &types.GenerationRequest{Platform: types.PlatformInstagram})
		var valErr *types.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "prompt", valErr.Field)
	})

	t.Run("unknown provider", func(t *testing.T) {
		f := setupContentServiceTest(t)
		_, err := f.service.Enhance(context.Background(), &types.GenerationRequest{Prompt: "x", Provider: "mistral"})
		var valErr *types.ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func TestOptions(t *testing.T) {
	f := setupContentServiceTest(t)
	opts := f.service.Options(context.Background())

	assert.Equal(t, types.AllPlatforms, opts.Platforms)
	assert.Equal(t, types.AllFormats, opts.Formats)
	assert.Len(t, opts.Audiences, 7)
	assert.Contains(t, opts.Locations, "christchurch")
}
