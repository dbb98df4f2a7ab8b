package types

// ModelEntry describes one recognizer model discovered on disk.
type ModelEntry struct {
	// Identifier, the model file name including extension.
	// example: ggml-small.bin
	ID string `json:"id" example:"ggml-small.bin"`
	// Absolute path to the model file.
	// example: /models/ggml-small.bin
	Path string `json:"path" example:"/models/ggml-small.bin"`
	// File size in bytes.
	// example: 487601967
	SizeBytes int64 `json:"size_bytes" example:"487601967"`
}

// RootResponse is returned by GET / and lists the service surface.
type RootResponse struct {
	// example: asrd
	Service string `json:"service" example:"asrd"`
	// Model identifier every instance serves.
	// example: small
	Model string `json:"model" example:"small"`
	// Languages accepted by the transcription endpoints.
	Languages []string `json:"languages"`
	// Route list for discovery.
	Endpoints []string `json:"endpoints"`
}
