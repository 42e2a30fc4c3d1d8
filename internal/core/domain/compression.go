package domain

// CompressionCodec names the codec an input was encoded with.
type CompressionCodec string

// CompressionOptions configures how inputs are decoded before they are checksummed.
type CompressionOptions struct {
	// Codec is the encoding of the input. "none" leaves input untouched.
	//
	// Default: none
	Codec CompressionCodec

	// Level defines the zstd encoder level used when producing compressed data.
	// Supported levels:
	//   - 1: Fastest compression, equivalent to zstd's fastest mode
	//   - 2: Default balanced compression (≈ zstd level 3)
	//   - 3: Better compression ratio (≈ zstd level 7-8) with 2x-3x CPU usage
	//   - 4: Maximum compression regardless of CPU cost
	// Ignored by gzip, which always uses its default level.
	Level uint8

	// DecoderConcurrency specifies the number of concurrent zstd decoders.
	// Default is number of CPU cores if set to 0.
	DecoderConcurrency uint8

	// MaxDecodedSize caps the decoded size of one input in bytes.
	// Inputs that expand past it fail instead of exhausting memory.
	MaxDecodedSize uint64
}
