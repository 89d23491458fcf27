package jsonutil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	type body struct {
		Prompt string `json:"prompt"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "valid JSON",
			data:    []byte(`{"prompt":"a red fox"}`),
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v body
			err := UnmarshalWithContext(tt.data, &v, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.HasPrefix(err.Error(), "test context: ") {
				t.Errorf("error should carry context, got %q", err)
			}
			if !tt.wantErr && v.Prompt != "a red fox" {
				t.Errorf("UnmarshalWithContext() v.Prompt = %q, want %q", v.Prompt, "a red fox")
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"object", `{"imageUrl":"https://img"}`, false},
		{"empty object", `{}`, false},
		{"null", `null`, true},
		{"array", `[1,2]`, true},
		{"string", `"hi"`, true},
		{"html", `<html>502</html>`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeObject([]byte(tt.data), "body")
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeObject(%q) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	m := map[string]interface{}{
		"str":  "value",
		"num":  42.0,
		"bool": true,
		"nil":  nil,
	}

	tests := []struct {
		key  string
		want string
	}{
		{"str", "value"},
		{"num", ""},
		{"bool", ""},
		{"nil", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetString(m, tt.key); got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, 400, map[string]string{"error": "bad request"})

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"bad request"}` {
		t.Errorf("body = %q", got)
	}
}
