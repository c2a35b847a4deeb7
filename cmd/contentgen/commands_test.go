package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTemplatesCmd(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "PLATFORM")
	assert.Contains(t, out, "instagram")
	assert.Contains(t, out, "waka")
}

func TestOptionsCmd(t *testing.T) {
	out, err := execute(t, "options")
	require.NoError(t, err)

	var opts types.ContentOptions
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, types.AllPlatforms, opts.Platforms)
	assert.NotEmpty(t, opts.Audiences)
}

func TestPromptCmd_Mobile(t *testing.T) {
	out, err := execute(t, "prompt", "--mobile", "--story", "A sunset kayak trip", "--platform", "instagram")
	require.NoError(t, err)
	assert.Contains(t, out, "# mode: mobile")
	assert.Contains(t, out, "A sunset kayak trip")
}

func TestGenerateCmd_CachedTemplate(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("CONTENT_GENERATION_CACHEDELAY", "0s")
	t.Setenv("CONTENT_REPOSITORIES_POSTGRES_ENABLED", "false")

	out, err := execute(t, "generate", "--json", "--platform", "instagram", "--story", "We paddled a waka with Ko Tāne")
	require.NoError(t, err)

	var result types.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Cached)
	assert.Equal(t, types.ProviderTemplate, result.Provider)
	assert.Equal(t, []types.Platform{types.PlatformInstagram}, result.Platforms)
}

func TestGenerateCmd_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CONTENT_PROVIDERS_CLAUDE_APIKEY", "")

	_, err := execute(t, "generate", "--platform", "instagram", "--story", "We paddled a waka with Ko Tāne")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestEnhanceCmd_RejectsClaude(t *testing.T) {
	_, err := execute(t, "enhance", "--provider", "claude", "--prompt", "Write about kayaks")
	require.Error(t, err)
	var vErr *types.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
