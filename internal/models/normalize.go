package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/cinex/internal/shared"
)

// RawRecord is an untyped movie object as decoded from an upstream response.
//
// Numbers are kept as [json.Number] so integral ids can be told apart from floats.
type RawRecord map[string]any

// DecodeRawRecords decodes a JSON array of objects into [RawRecord] values.
func DecodeRawRecords(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode movie records: %w", err)
	}
	return records, nil
}

// DecodeRawRecord decodes a single JSON object.
func DecodeRawRecord(data []byte) (RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var record RawRecord
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode movie record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: record is null", shared.ErrMalformedRecord)
	}
	return record, nil
}

// Normalize converts a raw upstream record into a [MovieSummary].
//
// id must be an integral number and title a non-empty string. Empty poster and release strings become
// absent, and vote_average is kept only when it is a finite number within [0, 10].
func Normalize(raw RawRecord) (MovieSummary, error) {
	var m MovieSummary
	if raw == nil {
		return m, fmt.Errorf("%w: record is null", shared.ErrMalformedRecord)
	}

	id, ok := integral(raw["id"])
	if !ok {
		return m, fmt.Errorf("%w: missing or non-integer id", shared.ErrMalformedRecord)
	}

	title, _ := raw["title"].(string)
	if strings.TrimSpace(title) == "" {
		return m, fmt.Errorf("%w: missing title for id %d", shared.ErrMalformedRecord, id)
	}

	m.ID = id
	m.Title = title
	m.PosterPath = optionalString(raw["poster_path"])
	m.ReleaseDate = optionalString(raw["release_date"])
	if v, ok := number(raw["vote_average"]); ok && !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 10 {
		m.VoteAverage = &v
	}
	return m, nil
}

// NormalizeAll normalizes every record, returning the valid summaries in input order alongside the
// errors for the records that were dropped.
func NormalizeAll(raws []RawRecord) ([]MovieSummary, []error) {
	out := make([]MovieSummary, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		m, err := Normalize(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, m)
	}
	return out, errs
}

// IsMalformed reports whether err came from [Normalize].
func IsMalformed(err error) bool {
	return errors.Is(err, shared.ErrMalformedRecord)
}

func integral(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
