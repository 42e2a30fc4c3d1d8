package ports

// Defines an interface for calculating and verifying data checksums.
type Checksum interface {
	// Calculates a 32-bit checksum for the provided data.
	// The specific checksum algorithm used depends on the implementation.
	Calculate(data []byte) uint32

	// Validates whether the provided data matches the expected checksum.
	// Returns true if the calculated checksum of the data matches, false otherwise.
	Verify(data []byte, expected uint32) bool

	// Size returns the checksum width in bytes.
	Size() uint8

	// Name returns the algorithm identifier, e.g. "crc32-iso-hdlc".
	Name() string
}
