package analyses

// Normalize fills in the members the model is allowed to omit. Today that is
// only line_by_line_changes, which defaults to an empty array so clients can
// iterate without a nil check. The map is mutated in place and returned.
func Normalize(result map[string]any) map[string]any {
	if result == nil {
		return result
	}
	if _, ok := result["line_by_line_changes"]; !ok {
		result["line_by_line_changes"] = []any{}
	}
	return result
}
