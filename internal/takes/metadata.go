package takes

// ensureMaps materializes the metadata and reasoning maps. Persisted rows may
// predate analysis, so both fields are read as empty mappings before any
// mutation; a stage must never replace the whole map, only its own namespace.
func (t *Take) ensureMaps() {
	if t.AIMetadata == nil {
		t.AIMetadata = map[string]any{}
	}
	if t.AIReasoning == nil {
		t.AIReasoning = map[string]any{}
	}
}

// SetMetadata writes a single analysis namespace into ai_metadata.
func (t *Take) SetMetadata(namespace string, value any) {
	t.ensureMaps()
	t.AIMetadata[namespace] = value
}

// Metadata returns the stored value for an analysis namespace as a mapping,
// or an empty mapping when absent or of an unexpected shape.
func (t *Take) Metadata(namespace string) map[string]any {
	if t.AIMetadata == nil {
		return map[string]any{}
	}
	if m, ok := t.AIMetadata[namespace].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// HasMetadata reports whether a namespace key exists at all, regardless of shape.
func (t *Take) HasMetadata(namespace string) bool {
	_, ok := t.AIMetadata[namespace]
	return ok
}

// SetReasoning writes a single namespace rationale into ai_reasoning.
func (t *Take) SetReasoning(namespace, text string) {
	t.ensureMaps()
	t.AIReasoning[namespace] = text
}

// Reasoning returns the rationale string for a namespace, or "".
func (t *Take) Reasoning(namespace string) string {
	if t.AIReasoning == nil {
		return ""
	}
	if s, ok := t.AIReasoning[namespace].(string); ok {
		return s
	}
	return ""
}
