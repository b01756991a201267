package artistloader

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NoneArtist is the sentinel name for "no artist selected". It is always
// selectable and never part of the catalog.
const NoneArtist = "None"

const (
	defaultStrength         = 1.0
	defaultStrengthStep     = 0.05
	defaultDragSensitivity  = 0.01 // strength per pixel of horizontal drag
	strengthDecimals        = 2
	strengthPrecisionFactor = 100 // 10^strengthDecimals
)

// ArtistValue is the persisted state of one artist row. Field names and
// order are the saved-graph contract and must not change.
type ArtistValue struct {
	On       bool    `json:"on"`
	Artist   string  `json:"artist"`
	Strength float64 `json:"strength"`
}

// DefaultArtistValue returns the value a freshly added row starts with.
func DefaultArtistValue() ArtistValue {
	return ArtistValue{On: false, Artist: NoneArtist, Strength: defaultStrength}
}

// UnmarshalJSON decodes a record, filling fields the record omits with the
// defaults so a value is never partially constructed.
func (v *ArtistValue) UnmarshalJSON(data []byte) error {
	type plain ArtistValue
	out := plain(DefaultArtistValue())
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Artist == "" {
		out.Artist = NoneArtist
	}
	*v = ArtistValue(out)
	return nil
}

// IsNone reports whether no artist is selected.
func (v ArtistValue) IsNone() bool {
	return v.Artist == "" || v.Artist == NoneArtist
}

// StrengthRange bounds the strength of every row in a list.
type StrengthRange struct {
	Min, Max float64
}

// DefaultStrengthRange is the canonical bound: [0, 3].
var DefaultStrengthRange = StrengthRange{Min: 0, Max: 3}

// Valid reports whether the range is usable.
func (r StrengthRange) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min < r.Max
}

// Clamp limits s to the range. NaN clamps to Min.
func (r StrengthRange) Clamp(s float64) float64 {
	if math.IsNaN(s) || s < r.Min {
		return r.Min
	}
	if s > r.Max {
		return r.Max
	}
	return s
}

// Normalize clamps s and rounds it to the stored precision.
func (r StrengthRange) Normalize(s float64) float64 {
	return r.Clamp(roundStrength(s))
}

// roundStrength rounds to two decimals so repeated small adjustments do not
// accumulate floating point drift.
func roundStrength(s float64) float64 {
	return math.Round(s*strengthPrecisionFactor) / strengthPrecisionFactor
}

// parseStrength parses user-typed strength text. ok is false for anything
// that is not a finite number.
func parseStrength(text string) (v float64, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// formatStrength renders a strength for display and for the prompt field.
func formatStrength(s float64) string {
	return strconv.FormatFloat(s, 'f', strengthDecimals, 64)
}
