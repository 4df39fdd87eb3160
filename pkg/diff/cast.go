package diff

import (
	"fmt"
	"strings"
)

// supportedCastTypes is the canonical set of cast targets accepted by
// ResolveCastExpression. The resolver is dialect-agnostic; it is the
// caller's responsibility to ensure the target backend accepts the
// canonical type name.
var supportedCastTypes = []string{
	"STRING", "FLOAT64", "BOOL", "DATE", "TIMESTAMP", "INT64",
	"BYTES", "NUMERIC", "BIGNUMERIC", "JSON", "TIME",
}

// castSynonyms maps common SQL type names to their canonical form.
var castSynonyms = map[string]string{
	"TEXT":    "STRING",
	"VARCHAR": "STRING",
	"INT":     "INT64",
	"INTEGER": "INT64",
	"BIGINT":  "INT64",
	"DOUBLE":  "FLOAT64",
	"FLOAT":   "FLOAT64",
	"BOOLEAN": "BOOL",
	"DECIMAL": "NUMERIC",
}

// ResolveCastExpression normalizes requestedType and wraps sourceExpr in a
// CAST. The type name is uppercased, mapped through known synonyms, and
// checked against the supported set; anything else is an
// UnsupportedTypeError.
func ResolveCastExpression(sourceExpr, requestedType string) (string, error) {
	normalized := strings.ToUpper(requestedType)
	if canonical, ok := castSynonyms[normalized]; ok {
		normalized = canonical
	}

	supported := false
	for _, t := range supportedCastTypes {
		if t == normalized {
			supported = true
			break
		}
	}
	if !supported {
		return "", &UnsupportedTypeError{Requested: requestedType}
	}

	return "CAST(" + sourceExpr + " AS " + normalized + ")", nil
}

// UnsupportedTypeError is returned when a requested cast target is not in
// the supported set.
type UnsupportedTypeError struct {
	Requested string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported cast type %q; supported types are: %s",
		e.Requested, strings.Join(supportedCastTypes, ", "))
}
