package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateSendsExpectedRequest(t *testing.T) {
	var gotMethod, gotAuth, gotType, gotID string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get(RequestIDHeader)
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{"imageUrl":"https://cdn.example/x.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", nil)
	resp, err := c.Generate(context.Background(), Request{Prompt: "a red fox"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]string{"prompt": "a red fox"}, gotBody)
	assert.NotEmpty(t, gotID)
	assert.Equal(t, "https://cdn.example/x.png", resp.ImageURL)
	assert.Equal(t, gotID, resp.RequestID)
}

func TestClient_GenerateResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantURL    string
		wantAPIErr *APIError
		wantNoImg  bool
		wantErr    bool
	}{
		{name: "success", status: 200, body: `{"imageUrl":"X"}`, wantURL: "X"},
		{name: "created", status: 201, body: `{"imageUrl":"Y"}`, wantURL: "Y"},
		{name: "error with message", status: 400, body: `{"error":"bad request"}`, wantAPIErr: &APIError{StatusCode: 400, Message: "bad request"}},
		{name: "error without message", status: 500, body: `{}`, wantAPIErr: &APIError{StatusCode: 500}},
		{name: "error with html body", status: 502, body: `<html>bad gateway</html>`, wantAPIErr: &APIError{StatusCode: 502}},
		{name: "success without image", status: 200, body: `{"status":"queued"}`, wantNoImg: true},
		{name: "success with empty image", status: 200, body: `{"imageUrl":""}`, wantNoImg: true},
		{name: "success with malformed body", status: 200, body: `{"imageUrl":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := NewClient(srv.URL, "k", nil).Generate(context.Background(), Request{Prompt: "p"})
			switch {
			case tt.wantAPIErr != nil:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantAPIErr, apiErr)
			case tt.wantNoImg:
				assert.ErrorIs(t, err, ErrNoImage)
			case tt.wantErr:
				require.Error(t, err)
				var apiErr *APIError
				assert.False(t, errors.As(err, &apiErr))
				assert.False(t, errors.Is(err, ErrNoImage))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, resp.ImageURL)
			}
		})
	}
}

func TestClient_GenerateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k", nil).Generate(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing request")
}

func TestClient_GenerateHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, "k", nil).Generate(ctx, Request{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "endpoint returned status 500", (&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "endpoint returned status 400: nope", (&APIError{StatusCode: 400, Message: "nope"}).Error())
}

func TestClient_GenerateUsesCallerRequestID(t *testing.T) {
	var gotID string
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"imageUrl":"X"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "k", nil).Generate(context.Background(), Request{Prompt: "p", RequestID: "req-1"})
	require.NoError(t, err)
	assert.Equal(t, "req-1", gotID)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.JSONEq(t, `{"prompt":"p"}`, string(raw))
}
