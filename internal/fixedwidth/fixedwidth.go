// Package fixedwidth extracts trimmed fields from fixed-offset text
// records, the CIF-style format the MSN and MCA feeds use.
package fixedwidth

import (
	"strings"

	"github.com/antigravity/railplan/internal/railerr"
)

// Field extracts rec[offset:offset+length], trimmed of surrounding
// whitespace. line is reported as context on error; pass 0 to omit it.
func Field(line int, fieldname, rec string, offset, length int) (string, error) {
	if offset+length > len(rec) {
		return "", railerr.InvalidDataf(line, "bad record length %d (while parsing field %s)", len(rec), fieldname)
	}
	return strings.TrimSpace(rec[offset : offset+length]), nil
}
