package wizard

import (
	"net/url"
	"strings"

	"github.com/netdok/maternity/internal/domain/patient"
)

// BuildSection validates a submitted step form and shapes it into the
// sub-record document that replaces the step's previous value.
//
// Rules, applied identically to every step:
//   - every required field must be non-empty, otherwise a ValidationError
//     naming all missing fields is returned and nothing is built;
//   - boolean fields hold the literal strings "true"/"false" in the form
//     encoding and are stored as real booleans; an absent boolean is false
//     (unchecked checkbox);
//   - every other field is stored verbatim as a string; optional string
//     fields left empty are omitted from the document.
func BuildSection(step Step, form url.Values) (map[string]any, error) {
	var missing []string
	for _, f := range step.Fields {
		if f.Required && form.Get(f.Name) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &patient.ValidationError{Missing: missing}
	}

	doc := make(map[string]any)
	for _, f := range step.Fields {
		raw := form.Get(f.Name)

		var value any
		switch {
		case f.Bool:
			value = raw == "true"
		case raw == "":
			continue
		default:
			value = raw
		}

		setPath(doc, f.storagePath(), value)
	}
	return doc, nil
}

// storagePath returns where the field lands in the sub-record.
func (f Field) storagePath() []string {
	if f.Path == "" {
		return []string{f.Name}
	}
	return strings.Split(f.Path, ".")
}

// setPath writes value at the dotted path, creating intermediate objects.
func setPath(doc map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		child, ok := doc[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			doc[key] = child
		}
		doc = child
	}
	doc[path[len(path)-1]] = value
}
