package model

import "encoding/json"

// DnaMatch is one row of a DNA match export. Fields is keyed by the
// lowercased, trimmed column header.
type DnaMatch struct {
	Fields         map[string]string
	NormalizedName string
}

// Get returns the value of a column, or "" if the column is absent.
func (m DnaMatch) Get(column string) string {
	return m.Fields[column]
}

// DisplayName is the name used to look the match up in a tree.
func (m DnaMatch) DisplayName() string {
	if m.NormalizedName != "" {
		return m.NormalizedName
	}
	return m.Fields["name"]
}

// MarshalJSON flattens the columns next to normalizedName, which is how
// rendering layers consume a match.
func (m DnaMatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m.Fields)+1)
	for k, v := range m.Fields {
		out[k] = v
	}
	if m.NormalizedName != "" {
		out["normalizedName"] = m.NormalizedName
	}
	return json.Marshal(out)
}

func (m *DnaMatch) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.NormalizedName = raw["normalizedName"]
	delete(raw, "normalizedName")
	m.Fields = raw
	return nil
}
