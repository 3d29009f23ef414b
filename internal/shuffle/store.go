package shuffle

import (
	"encoding/json"
	"math"
)

// Map holds one permutation per profile id.
type Map map[string][]int

// Serialize returns the plain storage shape: profile id to a flat int array.
func Serialize(m Map) map[string][]int {
	out := make(map[string][]int, len(m))
	for id, indices := range m {
		cp := make([]int, len(indices))
		copy(cp, indices)
		out[id] = cp
	}
	return out
}

// MarshalJSON encodes the map in its storage shape.
func (m Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(Serialize(m))
}

// Deserialize rebuilds a Map from an untyped object. Values that are not
// integer arrays are skipped; nil input yields an empty map.
func Deserialize(raw map[string]any) Map {
	out := Map{}
	for id, value := range raw {
		indices, ok := toInts(value)
		if !ok {
			continue
		}
		out[id] = indices
	}
	return out
}

// DeserializeJSON decodes a stored JSON object. Malformed input yields
// whatever entries are valid, possibly none.
func DeserializeJSON(data []byte) Map {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Map{}
	}
	return Deserialize(raw)
}

// GetOrCreate returns the stored permutation for profileID, or the identity
// permutation when none was recorded.
func GetOrCreate(profileID string, clueCount int, m Map) []int {
	if indices, ok := m[profileID]; ok {
		return indices
	}
	return Identity(clueCount)
}

func toInts(value any) ([]int, bool) {
	switch v := value.(type) {
	case []int:
		cp := make([]int, len(v))
		copy(cp, v)
		return cp, true
	case []float64:
		out := make([]int, 0, len(v))
		for _, f := range v {
			n, ok := floatToInt(f)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				i, ok := floatToInt(n)
				if !ok {
					return nil, false
				}
				out = append(out, i)
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
