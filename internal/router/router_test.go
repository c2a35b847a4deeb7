package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-tourism-content/config"
	"github.com/FACorreiaa/go-tourism-content/internal/container"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

type RouterSuite struct {
	suite.Suite
	claudeCalls atomic.Int32
	claude      *httptest.Server
	api         *httptest.Server
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.claudeCalls.Store(0)
	s.claude = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.claudeCalls.Add(1)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"A food tour worth the trip."}]}`))
	}))
	s.api = httptest.NewServer(s.newRouter("sk-ant-test"))
}

func (s *RouterSuite) TearDownTest() {
	s.api.Close()
	s.claude.Close()
}

func (s *RouterSuite) newRouter(claudeKey string) http.Handler {
	cfg, err := config.Load(config.Embedded())
	s.Require().NoError(err)
	cfg.Providers.Claude.APIKey = claudeKey
	cfg.Providers.Claude.BaseURL = s.claude.URL
	cfg.Generation.CacheDelay = 0

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainer(context.Background(), &cfg, logger, container.Options{HTTPClient: s.claude.Client()})
	s.Require().NoError(err)

	return SetupRouter(&Config{
		ContentHandler: c.ContentHandler,
		PublishHandler: c.PublishHandler,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.Timeout,
	})
}

func (s *RouterSuite) postJSON(url, body string) *http.Response {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *RouterSuite) TestPing() {
	resp, err := http.Get(s.api.URL + "/ping")
	s.Require().NoError(err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", string(body))
}

func (s *RouterSuite) TestGenerate_CachedTemplate() {
	resp := s.postJSON(s.api.URL+"/api/v1/content/generate",
		`{"platform":"instagram","userData":{"story":"Ko Tāne was amazing, we took a waka on the river"}}`)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result types.GenerationResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))
	s.True(result.Cached)
	s.Equal(types.BucketWaka, result.Detection.Bucket)
	s.Zero(s.claudeCalls.Load())
}

func (s *RouterSuite) TestGenerate_LiveProvider() {
	resp := s.postJSON(s.api.URL+"/api/v1/content/generate",
		`{"prompt":"Write about a food tour","platforms":["facebook"],"formats":["blog"]}`)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result types.GenerationResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))
	s.False(result.Cached)
	s.Equal("A food tour worth the trip.", result.Content)
	s.Equal(1, result.Metadata.PlatformCount)
	s.EqualValues(1, s.claudeCalls.Load())
}

func (s *RouterSuite) TestGenerate_MissingKey() {
	api := httptest.NewServer(s.newRouter(""))
	defer api.Close()

	resp := s.postJSON(api.URL+"/api/v1/content/generate", `{"prompt":"Write about a food tour","platforms":["facebook"]}`)
	defer resp.Body.Close()

	s.Equal(http.StatusInternalServerError, resp.StatusCode)
	var body types.ErrorBody
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Contains(body.Error, "ANTHROPIC_API_KEY")
	s.NotEmpty(body.RequestID)
	s.Zero(s.claudeCalls.Load())
}

func (s *RouterSuite) TestRejectsNonJSON() {
	resp, err := http.Post(s.api.URL+"/api/v1/content/generate", "text/plain", strings.NewReader("hello"))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
}

func (s *RouterSuite) TestOptionsAndPublish() {
	resp, err := http.Get(s.api.URL + "/api/v1/content/options")
	s.Require().NoError(err)
	var opts types.ContentOptions
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&opts))
	resp.Body.Close()
	s.Len(opts.Platforms, len(types.AllPlatforms))

	resp = s.postJSON(s.api.URL+"/api/v1/content/publish", `{"content":"Kia ora","platforms":["instagram"]}`)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func TestSwaggerDoc(t *testing.T) {
	r := SetupRouter(&Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), AllowedOrigins: []string{"*"}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/content/generate")
}
