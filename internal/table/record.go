package table

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Lookup returns the first of keys present on raw. Upstream services are not
// consistent about key casing, so normalizers list the spellings they accept.
func Lookup(raw gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if value := raw.Get(key); value.Exists() && value.Type != gjson.Null {
			return value
		}
	}
	return gjson.Result{}
}

// RequireID reads a positive integer id from the first present key.
func RequireID(raw gjson.Result, keys ...string) (int, error) {
	value := Lookup(raw, keys...)
	if !value.Exists() {
		return 0, fmt.Errorf("record has no %s", strings.Join(keys, "/"))
	}
	id := int(value.Int())
	if id <= 0 {
		return 0, fmt.Errorf("record has invalid id %q", value.String())
	}
	return id, nil
}

// DatePart drops the time of day from an ISO timestamp.
func DatePart(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}
