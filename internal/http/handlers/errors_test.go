package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopadmin/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", domain.ValidationError{Field: "uuid", Msg: "wajib diisi"}, http.StatusBadRequest, "validation_error", "uuid wajib diisi"},
		{"not found", domain.NotFoundError{Resource: "orders"}, http.StatusNotFound, "not_found", "orders tidak ditemukan"},
		{"storage", domain.StorageError{Msg: "gagal membaca data orders", Status: http.StatusGatewayTimeout, Err: errors.New("i/o timeout")}, http.StatusGatewayTimeout, "storage_error", "gagal membaca data orders"},
		{"storage without status", domain.StorageError{Msg: "gagal"}, http.StatusInternalServerError, "storage_error", "gagal"},
		{"internal", domain.InternalError{Msg: "gagal menyusun query", Err: errors.New("boom")}, http.StatusInternalServerError, "internal_error", "gagal menyusun query"},
		{"unknown", errors.New("driver: secret dsn"), http.StatusInternalServerError, "internal_error", "terjadi kesalahan"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondDomainError(c, tc.err)

		var body ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if w.Code != tc.status || body.Code != tc.code || body.Message != tc.message {
			t.Errorf("%s: got %d %s %q", tc.name, w.Code, body.Code, body.Message)
		}
	}
}
