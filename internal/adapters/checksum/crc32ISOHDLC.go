package checksum

import (
	isohdlc "github.com/iamNilotpal/crc/pkg/checksum"
)

type crc32ISOHDLC struct {
	name string
}

func NewCRC32ISOHDLC() *crc32ISOHDLC {
	return &crc32ISOHDLC{name: string(CRC32ISOHDLC)}
}

func (c *crc32ISOHDLC) Calculate(data []byte) uint32 {
	return isohdlc.Checksum(data)
}

func (c *crc32ISOHDLC) Verify(data []byte, expected uint32) bool {
	return isohdlc.VerifyChecksum(data, expected)
}

func (c *crc32ISOHDLC) Size() uint8 {
	return isohdlc.Size
}

func (c *crc32ISOHDLC) Name() string {
	return c.name
}
