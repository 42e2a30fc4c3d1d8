package ports

import "bytes"

// FileReader loads whole files for checksumming.
type FileReader interface {
	// ReadInto appends the contents of filePath to buf.
	ReadInto(filePath string, buf *bytes.Buffer) error
}
