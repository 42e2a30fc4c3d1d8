// Package checksum computes and verifies CRC-32/ISO-HDLC checksums, the
// variant used by Ethernet, ZIP, PNG and gzip.
//
// The algorithm configuration is fixed:
//
//	polynomial  0x04C11DB7 (normal), 0xEDB88320 (reversed)
//	init        0xFFFFFFFF
//	refin/out   true
//	xorout      0xFFFFFFFF
//	check       0xCBF43926 ("123456789")
//
// It is not CRC-32/BZIP2 and not CRC-32C (Castagnoli). Both functions are
// pure and safe for concurrent use.
package checksum

import "hash/crc32"

const (
	// Polynomial is the ISO-HDLC generator polynomial in normal form.
	Polynomial uint32 = 0x04C11DB7

	// ReversedPolynomial is Polynomial with its bits reflected, the form
	// table-driven implementations are built from.
	ReversedPolynomial uint32 = 0xEDB88320

	// Init is the initial register value.
	Init uint32 = 0xFFFFFFFF

	// XorOut is applied to the register after the last byte.
	XorOut uint32 = 0xFFFFFFFF

	// Check is the checksum of the ASCII string "123456789".
	Check uint32 = 0xCBF43926

	// Size is the size of a checksum in bytes.
	Size = crc32.Size
)

// Built once, read-only afterwards. crc32.IEEE is the reversed ISO-HDLC
// polynomial and hash/crc32 applies Init/XorOut and reflection itself.
var table = crc32.MakeTable(ReversedPolynomial)

// Checksum returns the CRC-32/ISO-HDLC of data. An empty input yields 0.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// VerifyChecksum reports whether the checksum of data equals expected.
func VerifyChecksum(data []byte, expected uint32) bool {
	return Checksum(data) == expected
}
