package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopadmin/internal/domain"
	"shopadmin/internal/metrics"
	"shopadmin/internal/query"
	"shopadmin/internal/repositories"
	"shopadmin/internal/utils"
)

// ResourceService runs list and lookup use cases for any catalogued resource.
type ResourceService struct {
	Compiler  *query.Compiler
	Repo      repositories.ResourceRepository
	RequestID string
}

// List compiles the filter and returns one page with the total count.
func (s ResourceService) List(ctx context.Context, resource string, filter query.RawFilter, subject string) (domain.Page, error) {
	q, err := s.Compiler.Compile(resource, filter, filter.Page(), query.Options{Subject: subject})
	if err != nil {
		return domain.Page{}, compileError(resource, err)
	}
	metrics.QueriesCompiled.WithLabelValues(resource).Inc()

	start := time.Now()
	total, err := s.Repo.Count(ctx, q)
	metrics.ObserveStorage(resource, "count", start, err)
	if err != nil {
		return domain.Page{}, s.storageFault(resource, "count", err)
	}

	var rows []domain.Record
	// skip the read when the page lies beyond the last row
	if int64(q.Pagination.Offset) < total {
		start = time.Now()
		rows, err = s.Repo.List(ctx, q)
		metrics.ObserveStorage(resource, "list", start, err)
		if err != nil {
			return domain.Page{}, s.storageFault(resource, "list", err)
		}
	}

	return domain.NewPage(rows, q.Pagination.Page, q.Pagination.Limit, total), nil
}

// Get returns one record in the general shape.
func (s ResourceService) Get(ctx context.Context, resource, key, subject string) (domain.Record, error) {
	rec, found, err := s.lookup(ctx, resource, key, query.Options{Shape: query.ShapeGeneral, Subject: subject})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFoundError{Resource: resource}
	}
	return rec, nil
}

// Exists checks a record is present before an update, reading only its key.
func (s ResourceService) Exists(ctx context.Context, resource, key string) (bool, error) {
	_, found, err := s.lookup(ctx, resource, key, query.Options{Shape: query.ShapeExists})
	return found, err
}

// ResolveID returns the internal id of a record so children can be attached to it.
func (s ResourceService) ResolveID(ctx context.Context, resource, key string) (int64, error) {
	rec, found, err := s.lookup(ctx, resource, key, query.Options{Shape: query.ShapeRef})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.NotFoundError{Resource: resource}
	}
	id, ok := toInt64(rec["id"])
	if !ok {
		return 0, domain.InternalError{Msg: "id " + resource + " tidak valid"}
	}
	return id, nil
}

func (s ResourceService) lookup(ctx context.Context, resource, key string, opts query.Options) (domain.Record, bool, error) {
	key = utils.TrimOrEmpty(key)
	if key == "" {
		return nil, false, domain.ValidationError{Field: "uuid", Msg: "wajib diisi"}
	}
	q, err := s.Compiler.Lookup(resource, key, opts)
	if err != nil {
		return nil, false, compileError(resource, err)
	}
	metrics.QueriesCompiled.WithLabelValues(resource).Inc()

	start := time.Now()
	rec, found, err := s.Repo.First(ctx, q)
	metrics.ObserveStorage(resource, "lookup", start, err)
	if err != nil {
		return nil, false, s.storageFault(resource, "lookup", err)
	}
	return rec, found, nil
}

func compileError(resource string, err error) error {
	if errors.Is(err, query.ErrUnknownResource) || errors.Is(err, query.ErrUnknownShape) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return domain.InternalError{Msg: "gagal menyusun query", Err: err}
}

// storageFault wraps a store failure with the status the caller should see.
func (s ResourceService) storageFault(resource, op string, err error) error {
	utils.LogEvent(s.RequestID, resource, op, "storage error: "+err.Error())

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// client went away; 499 is what proxies log for it
		status = 499
	case errors.Is(err, driver.ErrBadConn):
		status = http.StatusServiceUnavailable
	}
	return domain.StorageError{Msg: "gagal membaca data " + resource, Status: status, Err: err}
}

func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case uint64:
		return int64(val), true
	case float64:
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return n, err == nil
	}
	return 0, false
}
