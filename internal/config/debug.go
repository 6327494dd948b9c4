package config

import "os"

func IsDebug() bool {
	return os.Getenv("COACH_DEBUG") == "1"
}

// IsJSONLog reports whether COACH_LOG_FORMAT asks for JSON lines.
func IsJSONLog() bool {
	return os.Getenv("COACH_LOG_FORMAT") == "json"
}
