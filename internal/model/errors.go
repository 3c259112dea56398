package model

import "fmt"

// MissingDataError reports that a field mandatory for the detected variant is
// absent. It is fatal for the document. Mode-optional fields never produce
// this error.
type MissingDataError struct {
	Variant string
	Field   string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("model: %s document is missing mandatory field %s", e.Variant, e.Field)
}
