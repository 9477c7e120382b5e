package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/users-api/internal/domain"
)

// Recognized keys, matched exactly. encoding/json matches struct fields
// case-insensitively, so key names are checked before the struct decode.
var (
	userKeys   = keySet("email", "firstName", "lastName", "social")
	socialKeys = keySet("facebook", "twitter", "github", "website")
)

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// checkKeys rejects the first key, in document order, that is not exactly
// one of the recognized names. Payloads that are not objects, or not valid
// JSON, are left for the struct decode to report.
func checkKeys(payload []byte) *domain.ValidationError {
	fields, ok := objectFields(payload)
	if !ok {
		return nil
	}

	for _, f := range fields {
		if !userKeys[f.key] {
			return notAllowed(f.key)
		}
		if f.key != "social" {
			continue
		}
		nested, ok := objectFields(f.value)
		if !ok {
			continue
		}
		for _, n := range nested {
			if !socialKeys[n.key] {
				return notAllowed("social." + n.key)
			}
		}
	}
	return nil
}

func notAllowed(path string) *domain.ValidationError {
	return domain.NewValidationError(path, fmt.Sprintf("%q is not allowed", path), nil)
}

type objectField struct {
	key   string
	value json.RawMessage
}

// objectFields lists the members of the JSON object in raw, keeping
// document order and duplicates. ok is false when raw is not an object.
func objectFields(raw []byte) ([]objectField, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	var fields []objectField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		fields = append(fields, objectField{key: key, value: value})
	}
	return fields, true
}
