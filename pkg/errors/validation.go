package errors

import (
	"strings"
	"unicode"

	"github.com/starrupture/srfactory/pkg/jsonpath"
)

// KeySeparator joins the parts of a composite factory output key. Ids may
// not contain it, which keeps "site;factory;output" unambiguous.
const KeySeparator = ";"

// Blank reports whether s is empty or contains only white space.
// White space is the visual equivalent of nothing entered.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateID checks an id used as a JSON object key or as a reference.
// kind describes the id for the message (e.g. "machine", "factory").
//
// Validation rules:
//   - Not blank
//   - No control characters
//   - No [KeySeparator]
func ValidateID(kind, id string, path *jsonpath.Path) error {
	if Blank(id) {
		return At(ErrCodeMalformed, path, "JSON mandatory %s ID entry %q invalid.", kind, id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return At(ErrCodeMalformed, path, "%s ID %q contains control characters.", kind, id)
		}
	}
	if strings.Contains(id, KeySeparator) {
		return At(ErrCodeMalformed, path, "%s ID %q may not contain %q.", kind, id, KeySeparator)
	}
	return nil
}
