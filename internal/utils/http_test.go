package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		statusCode int
		wantBody   string
	}{
		{"map", map[string]string{"status": "pending"}, http.StatusOK, `{"status":"pending"}`},
		{"slice", []int{1, 2, 3}, http.StatusOK, `[1,2,3]`},
		{"nil", nil, http.StatusOK, `null`},
		{"empty struct", struct{}{}, http.StatusOK, `{}`},
		{"error payload with custom status", map[string]string{"error": "not found"}, http.StatusNotFound, `{"error":"not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.statusCode)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n != len(tt.wantBody) {
				t.Errorf("expected %d bytes written, got %d", len(tt.wantBody), n)
			}
			if w.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestWriteJSON_UnserializableData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)
	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
