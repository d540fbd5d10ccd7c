package helm

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values represents helm chart values as a map.
type Values map[string]any

// Merge combines multiple Values maps with later maps taking precedence.
// Merging is shallow; use deepMerge for nested defaults.
func Merge(valueMaps ...Values) Values {
	result := make(Values)
	for _, m := range valueMaps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}

// ToYAML converts values to YAML bytes.
func (v Values) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode values to YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses YAML bytes into Values.
func FromYAML(data []byte) (Values, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML values: %w", err)
	}
	return values, nil
}

// ToMap converts Values (including nested Values) into plain nested maps,
// the shape the Helm engine expects.
func (v Values) ToMap() map[string]any {
	result := make(map[string]any, len(v))
	for k, val := range v {
		result[k] = toPlain(val)
	}
	return result
}

func toPlain(v any) any {
	switch typed := v.(type) {
	case Values:
		return typed.ToMap()
	case map[string]any:
		plain := make(map[string]any, len(typed))
		for k, val := range typed {
			plain[k] = toPlain(val)
		}
		return plain
	case []any:
		plain := make([]any, len(typed))
		for i, val := range typed {
			plain[i] = toPlain(val)
		}
		return plain
	case []Values:
		plain := make([]any, len(typed))
		for i, val := range typed {
			plain[i] = val.ToMap()
		}
		return plain
	default:
		return v
	}
}

// deepMerge merges override into base recursively. Nested maps merge
// key by key; scalars and lists in override replace base wholesale.
func deepMerge(base, override Values) Values {
	result := make(Values, len(base))
	for k, v := range base {
		result[k] = v
	}
	for k, overrideVal := range override {
		baseVal, exists := result[k]
		if !exists {
			result[k] = overrideVal
			continue
		}

		baseMap, baseOK := asValues(baseVal)
		overrideMap, overrideOK := asValues(overrideVal)
		if baseOK && overrideOK {
			result[k] = deepMerge(baseMap, overrideMap)
			continue
		}
		result[k] = overrideVal
	}
	return result
}

func asValues(v any) (Values, bool) {
	switch typed := v.(type) {
	case Values:
		return typed, true
	case map[string]any:
		return Values(typed), true
	default:
		return nil, false
	}
}
