package httpapi

// maxUploadBytes controls the maximum allowed request body size for the
// transcription endpoints. Uploads are whole media files, so the default
// is generous.
var maxUploadBytes int64 = 100 << 20

// SetMaxUploadBytes allows configuring the maximum upload size.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = 100 << 20
		return
	}
	maxUploadBytes = n
}

// asrTimeout caps how long one transcription request may run.
// Zero means no additional timeout beyond server/connection timeouts.
var asrTimeout = int64(0) // seconds

// SetASRTimeoutSeconds sets the transcription timeout in seconds (0 disables).
func SetASRTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	asrTimeout = sec
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
