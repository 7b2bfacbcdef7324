// Package kstore persists the site's historical k calibration
// measurements, keyed by tracer and reconstruction profile.
//
// The backing file is a single JSON object mapping "{tracer}_{profile}"
// keys to arrays of measured k values. Every append rewrites the whole
// file, and there is no locking: two simultaneous sessions can lose each
// other's appends (last write wins on the full mapping). That is an
// accepted limitation of the single-operator workstation this targets; a
// multi-user deployment would need per-key atomic appends.
package kstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/petplan/petplan/device"
)

// LoadStatus distinguishes an empty history from an unreadable one, so
// the caller can warn the operator instead of silently recalibrating
// against nothing.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadNotFound
	LoadParseError
)

// Store reads and writes one backing file.
type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Key joins tracer and reconstruction profile into the store key. k is
// site- and profile-specific, so measurements are never shared across
// profiles.
func Key(tracer device.Tracer, reconProfile string) string {
	return fmt.Sprintf("%s_%s", tracer, reconProfile)
}

// Load reads the full store. It never fails the caller: a missing or
// unreadable file yields an empty mapping, with a status the caller may
// surface to the operator.
func (s *Store) Load() (map[string][]float64, LoadStatus) {
	raw, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return map[string][]float64{}, LoadNotFound
	}
	if err != nil {
		return map[string][]float64{}, LoadParseError
	}

	store := map[string][]float64{}
	if err := json.Unmarshal(raw, &store); err != nil {
		return map[string][]float64{}, LoadParseError
	}

	return store, LoadOK
}

// Save serializes and overwrites the whole backing file. Unlike the tool
// this replaces, a write failure is returned rather than swallowed; the
// caller decides whether it is worth warning the operator about.
func (s *Store) Save(store map[string][]float64) error {
	buf, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return pfx.Err(err)
	}

	if err := os.WriteFile(s.Path, buf, 0o644); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// AddMeasurement appends one k measurement under the (tracer, profile)
// key and immediately persists the whole store. The mapping is returned
// updated even when persistence fails.
func (s *Store) AddMeasurement(store map[string][]float64, tracer device.Tracer, reconProfile string, k float64) (map[string][]float64, error) {
	key := Key(tracer, reconProfile)
	store[key] = append(store[key], k)

	if err := s.Save(store); err != nil {
		return store, err
	}

	return store, nil
}

// Summary are exact order statistics over every historical k measurement
// for one (tracer, profile) key. No windowing and no down-weighting of
// older samples.
type Summary struct {
	Median float64
	P25    float64
	P75    float64
	N      int
}

// Summarize computes the summary for one key. ok is false when no
// measurements exist for it.
func Summarize(store map[string][]float64, tracer device.Tracer, reconProfile string) (Summary, bool) {
	vals := store[Key(tracer, reconProfile)]
	if len(vals) == 0 {
		return Summary{}, false
	}

	data := stats.Float64Data(vals)

	median, err := data.Median()
	if err != nil {
		return Summary{}, false
	}
	p25, err := data.Percentile(25)
	if err != nil {
		return Summary{}, false
	}
	p75, err := data.Percentile(75)
	if err != nil {
		return Summary{}, false
	}

	return Summary{Median: median, P25: p25, P75: p75, N: len(vals)}, true
}

// SiteSummary loads the store and summarizes one key in a single call.
func (s *Store) SiteSummary(tracer device.Tracer, reconProfile string) (Summary, LoadStatus, bool) {
	store, status := s.Load()
	sum, ok := Summarize(store, tracer, reconProfile)

	return sum, status, ok
}
