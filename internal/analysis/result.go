package analysis

// Result is an opaque analyzer output mapping.
type Result map[string]any

// Float returns the numeric value for key, or fallback when the key is
// absent or not numeric. JSON round-trips yield float64; int values from
// in-process analyzers are accepted too.
func (r Result) Float(key string, fallback float64) float64 {
	if r == nil {
		return fallback
	}
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// String returns the string value for key, or fallback.
func (r Result) String(key, fallback string) string {
	if r == nil {
		return fallback
	}
	if v, ok := r[key].(string); ok {
		return v
	}
	return fallback
}

// Bool returns the boolean value for key, or fallback.
func (r Result) Bool(key string, fallback bool) bool {
	if r == nil {
		return fallback
	}
	if v, ok := r[key].(bool); ok {
		return v
	}
	return fallback
}

// List returns the slice value for key, or nil.
func (r Result) List(key string) []any {
	if r == nil {
		return nil
	}
	if v, ok := r[key].([]any); ok {
		return v
	}
	return nil
}

// Map returns the nested mapping for key, or an empty mapping.
func (r Result) Map(key string) Result {
	if r == nil {
		return Result{}
	}
	switch v := r[key].(type) {
	case Result:
		return v
	case map[string]any:
		return Result(v)
	default:
		return Result{}
	}
}

// Has reports whether key is present at all.
func (r Result) Has(key string) bool {
	_, ok := r[key]
	return ok
}
