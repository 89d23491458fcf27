package mockapi

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"imagefy/internal/download"
	"imagefy/internal/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, key string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(key, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_RoundTripWithClient(t *testing.T) {
	srv := newTestServer(t, "anon")
	client := generation.NewClient(srv.URL, "anon", srv.Client())

	resp, err := client.Generate(context.Background(), generation.Request{Prompt: "a red fox"})
	require.NoError(t, err)
	assert.Contains(t, resp.ImageURL, srv.URL+"/images/")

	// The returned URL serves a decodable PNG.
	path, err := download.NewStore(t.TempDir(), srv.Client()).Save(context.Background(), resp.ImageURL)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestGenerate_ErrorContract(t *testing.T) {
	srv := newTestServer(t, "anon")

	tests := []struct {
		name       string
		key        string
		prompt     string
		wantStatus int
		wantMsg    string
	}{
		{"wrong key", "other", "cat", http.StatusUnauthorized, "Invalid API key"},
		{"blank prompt", "anon", "   ", http.StatusBadRequest, "Prompt is required"},
		{"forced failure", "anon", "fail: Content policy violation", http.StatusInternalServerError, "Content policy violation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := generation.NewClient(srv.URL, tt.key, srv.Client())
			_, err := client.Generate(context.Background(), generation.Request{Prompt: tt.prompt})
			var apiErr *generation.APIError
			require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestGenerate_MissingBearer(t *testing.T) {
	srv := newTestServer(t, "")
	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader([]byte(`{"prompt":"x"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImage_NotFound(t *testing.T) {
	srv := newTestServer(t, "")
	resp, err := http.Get(srv.URL + "/images/nope.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStore_EvictsOldest(t *testing.T) {
	s := New("", nil)
	s.limit = 2
	s.store("a", []byte("1"))
	s.store("b", []byte("2"))
	s.store("c", []byte("3"))

	assert.Len(t, s.images, 2)
	assert.NotContains(t, s.images, "a")
	assert.Equal(t, []string{"b", "c"}, s.order)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	resp, err := http.Get(srv.URL + "/images/a.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/images/c.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_DefaultLimit(t *testing.T) {
	assert.Equal(t, maxImages, New("", nil).limit)
}

func TestRender_DeterministicPerPrompt(t *testing.T) {
	a, err := render("sunset")
	require.NoError(t, err)
	b, err := render("sunset")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	img, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, imageSize, img.Bounds().Dx())
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, "")
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
