// Package mockapi is a local stand-in for the hosted generate-image
// function. It speaks the same JSON contract and renders a solid-color PNG
// per prompt, so the client can be exercised without network access.
package mockapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"sync"

	"imagefy/internal/jsonutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FailPrefix makes the mock answer with a domain error: a prompt starting
// with it is echoed back in the "error" field.
const FailPrefix = "fail:"

const imageSize = 64

// maxImages bounds the in-memory store; the oldest image is evicted first.
const maxImages = 128

// Server holds the most recent generated images in memory.
type Server struct {
	apiKey string
	logger *zap.Logger
	limit  int

	mu     sync.RWMutex
	images map[string][]byte
	order  []string // insertion order, oldest first
}

// New creates a mock server. An empty apiKey accepts any bearer token.
func New(apiKey string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{apiKey: apiKey, logger: logger, limit: maxImages, images: make(map[string][]byte)}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Post("/", s.generate)
	r.Post("/functions/v1/generate-image", s.generate)
	r.Get("/images/{id}.png", s.image)
	return r
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		jsonutil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
		return
	}
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	prompt := strings.TrimSpace(body.Prompt)
	if prompt == "" {
		jsonutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Prompt is required"})
		return
	}
	if msg, ok := strings.CutPrefix(prompt, FailPrefix); ok {
		s.logger.Info("mock generation failing on request", zap.String("request_id", r.Header.Get("X-Request-ID")))
		jsonutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": strings.TrimSpace(msg)})
		return
	}

	data, err := render(prompt)
	if err != nil {
		jsonutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to render image"})
		return
	}
	id := uuid.NewString()
	s.store(id, data)

	s.logger.Info("mock generation",
		zap.String("request_id", r.Header.Get("X-Request-ID")),
		zap.String("image_id", id),
	)
	jsonutil.WriteJSON(w, http.StatusOK, map[string]string{
		"imageUrl": baseURL(r) + "/images/" + id + ".png",
	})
}

func (s *Server) store(id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = data
	s.order = append(s.order, id)
	for len(s.order) > s.limit {
		delete(s.images, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return s.apiKey == "" || token == s.apiKey
}

// render paints a square in a color derived from the prompt.
func render(prompt string) ([]byte, error) {
	sum := sha256.Sum256([]byte(prompt))
	fill := color.RGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, imageSize, imageSize))
	for y := 0; y < imageSize; y++ {
		for x := 0; x < imageSize; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
