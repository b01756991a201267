package artistloader

import (
	"encoding/json"
	"fmt"
)

// Serialize returns the values of l's artist rows in order. Structural rows
// are skipped.
func Serialize(l *ArtistList) []ArtistValue {
	var out []ArtistValue
	for _, w := range l.widgets {
		if !w.Serializable() {
			continue
		}
		if aw, ok := w.(*ArtistWidget); ok {
			out = append(out, aw.value)
		}
	}
	if out == nil {
		out = []ArtistValue{}
	}
	return out
}

// Deserialize replaces l's artist rows with one row per record, in order.
// Structural rows are left alone. Strengths are clamped to the list range.
func Deserialize(records []ArtistValue, l *ArtistList) {
	l.Clear()
	for i := range records {
		l.AddArtist(&records[i])
	}
}

// MarshalValues encodes records as the JSON array the host stores.
func MarshalValues(records []ArtistValue) ([]byte, error) {
	if records == nil {
		records = []ArtistValue{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("artistloader: encode values: %w", err)
	}
	return data, nil
}

// UnmarshalValues decodes a JSON array of records. Missing fields take
// their defaults.
func UnmarshalValues(data []byte) ([]ArtistValue, error) {
	var records []ArtistValue
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("artistloader: decode values: %w", err)
	}
	return records, nil
}
