package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusCreated)
	n, err := w.Write([]byte(`{"status":"pending"}`))

	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, 20, w.size)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  int
	}{
		{"single call", []int{http.StatusAccepted}, http.StatusAccepted},
		{"second call ignored", []int{http.StatusCreated, http.StatusInternalServerError}, http.StatusCreated},
		{"third call ignored too", []int{http.StatusOK, http.StatusCreated, http.StatusNotFound}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			for _, code := range tt.codes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.want, w.status)
			assert.Equal(t, tt.want, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	_, err := w.Write([]byte("pong"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_SizeAccumulatesAcrossWrites(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.Write([]byte("first "))
	w.Write([]byte("second"))

	assert.Equal(t, len("first ")+len("second"), w.size)
	assert.Equal(t, []byte("second"), w.body, "body keeps only the last chunk")
	assert.Equal(t, "first second", rr.Body.String())
}
