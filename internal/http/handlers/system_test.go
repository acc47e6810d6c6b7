package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "shopadmin/internal/config"
	"shopadmin/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func thingsCompiler() *query.Compiler {
	things := &query.Resource{
		Name:  "things",
		Table: "things",
		Joins: []query.Join{{Alias: "owner", Table: "owners", ForeignKey: "id", LocalKey: "owner_id"}},
	}
	reg := query.NewRegistry(map[string]map[string]query.Shape{
		"things": {
			query.ShapeGeneral: {
				Fields:    []string{"uuid", "name"},
				Relations: []query.Relation{{Alias: "owner", Shape: query.Shape{Fields: []string{"email"}}}},
			},
		},
	})
	return query.NewCompiler([]*query.Resource{things}, reg, 100)
}

func TestDBCheckReportsMissingColumn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer raw.Close()
	prev := intconfig.DB
	intconfig.DB = sqlx.NewDb(raw, "mysql")
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery(`information_schema\.tables`).WithArgs("things").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("things"))
	mock.ExpectQuery(`information_schema\.columns`).WithArgs("things", "uuid").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("uuid"))
	mock.ExpectQuery(`information_schema\.columns`).WithArgs("things", "name").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	r := gin.New()
	r.GET("/api/db-check", DBCheck(thingsCompiler()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Healthy   bool `json:"healthy"`
		Resources map[string]struct {
			Table          string   `json:"table"`
			Exists         bool     `json:"exists"`
			MissingColumns []string `json:"missing_columns"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	entry := body.Resources["things"]
	if body.Healthy || !entry.Exists || len(entry.MissingColumns) != 1 || entry.MissingColumns[0] != "name" {
		t.Fatalf("unexpected report: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDBCheckWithoutConnection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := intconfig.DB
	intconfig.DB = nil
	defer func() { intconfig.DB = prev }()

	r := gin.New()
	r.GET("/api/db-check", DBCheck(thingsCompiler()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}
