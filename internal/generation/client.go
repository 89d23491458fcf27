// Package generation talks to the remote image-generation function.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"imagefy/internal/jsonutil"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id so endpoint logs can be matched
// with ours.
const RequestIDHeader = "X-Request-ID"

// ErrNoImage is returned when the endpoint answers with a success status but
// no image reference.
var ErrNoImage = errors.New("response has no imageUrl")

// Request is the outbound payload. RequestID is sent as a header, not in
// the body; one is generated when empty.
type Request struct {
	Prompt    string `json:"prompt"`
	RequestID string `json:"-"`
}

// Response is a successful generation.
type Response struct {
	ImageURL  string
	RequestID string
}

// APIError is returned for non-success HTTP statuses. Message is the body's
// "error" field and is empty when the body carried none or did not parse.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// Generator is the port the submission workflow depends on.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Client is the HTTP implementation of Generator.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Ensure Client satisfies Generator at compile time.
var _ Generator = (*Client)(nil)

// NewClient constructs a Client for endpoint. apiKey is sent as a bearer
// credential. If httpClient is nil, http.DefaultClient is used; deadlines
// come from the caller's context.
func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, httpClient: httpClient}
}

// Generate posts req and decodes the endpoint's answer. Transport failures
// and malformed success bodies are returned as wrapped errors; non-success
// statuses as *APIError; a success body without imageUrl as ErrNoImage.
func (c *Client) Generate(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encoding request body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if obj, err := jsonutil.DecodeObject(body, "error body"); err == nil {
			apiErr.Message = jsonutil.GetString(obj, "error")
		}
		return Response{}, apiErr
	}

	obj, err := jsonutil.DecodeObject(body, "decoding response")
	if err != nil {
		return Response{}, err
	}
	imageURL := jsonutil.GetString(obj, "imageUrl")
	if imageURL == "" {
		return Response{}, ErrNoImage
	}
	return Response{ImageURL: imageURL, RequestID: requestID}, nil
}
