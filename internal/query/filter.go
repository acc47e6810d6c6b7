package query

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"shopadmin/internal/utils"
)

// Request keys shared by every resource.
const (
	KeySearch    = "search"
	KeyStartDate = "startDate"
	KeyEndDate   = "endDate"
	KeyPage      = "page"
	KeyLimit     = "limit"
	KeySort      = "sort"
)

// RawFilter is the untyped payload a caller sends. Values are strings,
// string lists, booleans or JSON numbers; unknown keys are ignored.
type RawFilter map[string]any

// FromValues builds a RawFilter from a query string. Repeated keys and
// "key[]" forms become lists.
func FromValues(v url.Values) RawFilter {
	out := make(RawFilter, len(v))
	for key, vals := range v {
		key = strings.TrimSuffix(key, "[]")
		if len(vals) == 0 {
			continue
		}
		prev, seen := out[key]
		switch {
		case seen:
			out[key] = append(toList(prev), vals...)
		case len(vals) == 1:
			out[key] = vals[0]
		default:
			out[key] = append([]string(nil), vals...)
		}
	}
	return out
}

// FromJSON builds a RawFilter from a JSON object body.
func FromJSON(raw []byte) (RawFilter, error) {
	out := RawFilter{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Text returns the trimmed scalar value for key. Lists of more than one
// value and blank strings report false.
func (f RawFilter) Text(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case json.Number:
		s = val.String()
	case bool:
		s = strconv.FormatBool(val)
	case []string:
		if len(val) != 1 {
			return "", false
		}
		s = val[0]
	case []any:
		if len(val) != 1 {
			return "", false
		}
		return RawFilter{key: val[0]}.Text(key)
	default:
		return "", false
	}
	s = utils.TrimOrEmpty(s)
	return s, s != ""
}

// List returns the non-blank values for key. A scalar string is split on
// commas so "a,b" and ["a","b"] are equivalent.
func (f RawFilter) List(key string) []string {
	v, ok := f[key]
	if !ok || v == nil {
		return nil
	}
	out := []string{}
	for _, item := range toList(v) {
		out = append(out, utils.SplitList(item)...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Bool reads a boolean filter. Only genuine booleans and the strings
// "true"/"false" are recognised.
func (f RawFilter) Bool(key string) (value bool, ok bool) {
	switch v := f[key].(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(utils.TrimOrEmpty(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	case []string:
		if len(v) == 1 {
			return RawFilter{key: v[0]}.Bool(key)
		}
	case []any:
		if len(v) == 1 {
			return RawFilter{key: v[0]}.Bool(key)
		}
	}
	return false, false
}

// Page extracts the pagination keys.
func (f RawFilter) Page() PageParams {
	page, _ := f.Text(KeyPage)
	limit, _ := f.Text(KeyLimit)
	sort, _ := f.Text(KeySort)
	return PageParams{Page: page, Limit: limit, Sort: sort}
}

func toList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := (RawFilter{"v": item}).Text("v"); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := (RawFilter{"v": v}).Text("v"); ok {
			return []string{s}
		}
		return nil
	}
}
