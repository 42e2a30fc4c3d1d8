package ports

// Defines the interface for compression operations.
// This allows us to decode inputs without the digest logic knowing the codec.
type Compression interface {
	// Compress reduces data size.
	// Returns compressed data and any error that occurred.
	Compress(data []byte) ([]byte, error)

	// Decompress restores original data.
	// Returns decompressed data and any error that occurred.
	Decompress(data []byte) ([]byte, error)

	// Close cleans up compression resources.
	Close() error

	// Name returns the codec identifier.
	Name() string
}
