package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imagefy/internal/auth"
	"imagefy/internal/config"
	"imagefy/internal/mockapi"
	"imagefy/internal/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setup points IMAGEFY_HOME at a temp dir and the endpoint at a mock server.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	t.Setenv(config.AnonKeyEnv, "test-key")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	srv := httptest.NewServer(mockapi.New("test-key", zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	t.Setenv(config.FunctionURLEnv, srv.URL+"/functions/v1/generate-image")
	return home
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	home := setup(t)

	out, _, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)

	out, _, err = run(t, "login", "ada@example.com")
	require.NoError(t, err)
	sessionFile := filepath.Join(home, "session.yaml")
	assert.Equal(t, "Signed in as ada@example.com\nSession saved to "+sessionFile+"\n", out)
	assert.FileExists(t, sessionFile)

	out, _, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com\n", out)

	out, _, err = run(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out\n", out)

	out, _, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)
}

func TestLogin_InvalidEmail(t *testing.T) {
	setup(t)
	_, _, err := run(t, "login", "not-an-email")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)
}

func TestGenerate_PrintsImageURL(t *testing.T) {
	setup(t)
	_, _, err := run(t, "login", "ada@example.com")
	require.NoError(t, err)

	out, _, err := run(t, "generate", "a", "red", "fox")
	require.NoError(t, err)
	url := strings.TrimSpace(out)
	assert.Contains(t, url, "/images/")
	assert.True(t, strings.HasSuffix(url, ".png"), "got %q", url)
}

func TestGenerate_Download(t *testing.T) {
	home := setup(t)
	_, _, err := run(t, "login", "ada@example.com")
	require.NoError(t, err)

	_, stderr, err := run(t, "generate", "--download", "a red fox")
	require.NoError(t, err)

	want := filepath.Join(home, "downloads", "generated-image.png")
	assert.Contains(t, stderr, "Saved "+want)
	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		signedIn bool
		prompt   string
		want     string
	}{
		{name: "signed out", prompt: "a red fox", want: submission.MsgAuthRequired},
		{name: "blank prompt", signedIn: true, prompt: "   ", want: submission.MsgEmptyPrompt},
		{name: "endpoint error", signedIn: true, prompt: mockapi.FailPrefix + "out of credits", want: "out of credits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			if tt.signedIn {
				_, _, err := run(t, "login", "ada@example.com")
				require.NoError(t, err)
			}
			out, stderr, err := run(t, "generate", tt.prompt)
			assert.ErrorIs(t, err, errReported)
			assert.Empty(t, out)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestGenerate_RequiresEndpoint(t *testing.T) {
	setup(t)
	t.Setenv(config.FunctionURLEnv, "")
	_, _, err := run(t, "generate", "a red fox")
	assert.ErrorIs(t, err, config.ErrMissingFunctionURL)
}
