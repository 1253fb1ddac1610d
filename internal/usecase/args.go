package usecase

// Argument extraction helpers. Arguments arrive as a decoded JSON object, so
// numbers are float64 and anything may be absent or of the wrong type; the
// helpers fall back rather than fail, leaving required-field policy to each
// handler.

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func boolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}
