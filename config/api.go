package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Search and media are read-only and hit on every keystroke; keep them
	// outside the auth handshake so scanner input is never throttled.
	return []string{"/api/search", "/api/media/thumb"}
}
