// Package config holds the owner's persisted settings and reads and writes
// them as a single JSON record on the device filesystem.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// UTC offset bounds and edit step, in hours.
const (
	MinUTC  = -12.0
	MaxUTC  = 14.0
	UTCStep = 0.25
)

// Defaults used when no valid record is stored. The dates are placeholders
// until the owner edits them.
const (
	DefaultUTC   = -5.0
	DefaultBirth = 820515600  // 1996-01-01 12:00:00 UTC-5
	DefaultDeath = 3345123600 // 2076-01-01 12:00:00 UTC-5
)

var (
	ErrCorrupt  = errors.New("config: corrupt record")
	ErrTooLarge = errors.New("config: record exceeds buffer")
)

// Config is the persisted record. Birth before Death is expected but not
// enforced.
type Config struct {
	UTCOffset float64 `json:"utc"`
	Birth     int64   `json:"birth"`
	Death     int64   `json:"death"`
}

func Default() Config {
	return Config{UTCOffset: DefaultUTC, Birth: DefaultBirth, Death: DefaultDeath}
}

// Encode returns the textual form of c.
func Encode(c Config) ([]byte, error) {
	return json.Marshal(c)
}

// Decode parses a record. All three keys must be present. An out of range or
// off-grid UTC offset is normalized rather than rejected.
func Decode(b []byte) (Config, error) {
	var r struct {
		UTC   *float64 `json:"utc"`
		Birth *int64   `json:"birth"`
		Death *int64   `json:"death"`
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	switch {
	case r.UTC == nil:
		return Config{}, fmt.Errorf("%w: missing utc", ErrCorrupt)
	case r.Birth == nil:
		return Config{}, fmt.Errorf("%w: missing birth", ErrCorrupt)
	case r.Death == nil:
		return Config{}, fmt.Errorf("%w: missing death", ErrCorrupt)
	}
	if math.IsNaN(*r.UTC) {
		return Config{}, fmt.Errorf("%w: utc is NaN", ErrCorrupt)
	}
	return Config{UTCOffset: NormalizeUTC(*r.UTC), Birth: *r.Birth, Death: *r.Death}, nil
}

// NormalizeUTC snaps h to the quarter-hour grid and clamps it to range.
func NormalizeUTC(h float64) float64 {
	q := math.Round(h/UTCStep) * UTCStep
	return math.Max(MinUTC, math.Min(MaxUTC, q))
}

// StepUTC moves h by steps quarter hours, stopping at the range bounds.
func StepUTC(h float64, steps int) float64 {
	return NormalizeUTC(h + float64(steps)*UTCStep)
}

// OffsetSeconds converts an offset in hours to whole seconds, rounding to
// the nearest second.
func OffsetSeconds(h float64) int64 {
	return int64(math.Round(h * 3600))
}
