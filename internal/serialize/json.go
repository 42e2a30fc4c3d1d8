package serialize

import (
	"encoding/json"
	"io"
)

// WriteJSONLine writes data as one line of JSON followed by a newline.
func WriteJSONLine(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(data)
}
