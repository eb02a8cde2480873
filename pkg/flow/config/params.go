package config

// Params wraps a map[string]any of worker parameters for typed extraction.
// Accessors return the default if the key is missing or the value cannot
// be converted to the requested type.
//
// Numbers arrive as float64 from JSON and HCL, int64 from TOML and int
// from YAML; every numeric accessor accepts all three.
type Params struct {
	data map[string]any
}

// New wraps data. A nil map gives empty Params.
func New(data map[string]any) Params {
	if data == nil {
		data = make(map[string]any)
	}
	return Params{data: data}
}

// String returns the string at key.
func (p Params) String(key, defaultVal string) string {
	if s, ok := p.data[key].(string); ok {
		return s
	}
	return defaultVal
}

func (p Params) Bool(key string, defaultVal bool) bool {
	if b, ok := p.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the number at key as an int. Floats with a fractional part
// give defaultVal.
func (p Params) Int(key string, defaultVal int) int {
	v, ok := p.data[key]
	if !ok {
		return defaultVal
	}
	if i, ok := toInt(v); ok {
		return i
	}
	return defaultVal
}

// Float returns the number at key as a float64.
func (p Params) Float(key string, defaultVal float64) float64 {
	v, ok := p.data[key]
	if !ok {
		return defaultVal
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return defaultVal
}

// FloatSlice returns the numeric list for key, or defaultVal if missing or
// if any element is not a number. Filter coefficients are the usual case.
func (p Params) FloatSlice(key string, defaultVal []float64) []float64 {
	v, ok := p.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []float64:
		return val
	case []int:
		out := make([]float64, len(val))
		for i, n := range val {
			out[i] = float64(n)
		}
		return out
	case []any:
		out := make([]float64, len(val))
		for i, item := range val {
			f, ok := toFloat(item)
			if !ok {
				return defaultVal
			}
			out[i] = f
		}
		return out
	}
	return defaultVal
}

// StringSlice returns the list of strings at key. A list with any
// non-string element gives defaultVal.
func (p Params) StringSlice(key string, defaultVal []string) []string {
	v, ok := p.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			out = append(out, s)
		}
		return out
	}
	return defaultVal
}

// Any returns the value at key with no conversion.
func (p Params) Any(key string, defaultVal any) any {
	v, ok := p.data[key]
	if !ok {
		return defaultVal
	}
	return v
}

// Has reports whether key is present, whatever its value.
func (p Params) Has(key string) bool {
	_, ok := p.data[key]
	return ok
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.data)
}

// Raw returns the wrapped map itself, not a copy.
func (p Params) Raw() map[string]any {
	return p.data
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val == float64(int(val)) {
			return int(val), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	}
	return 0, false
}
