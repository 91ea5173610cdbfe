package schema

import "fmt"

// Warning is a recoverable condition found while building or generating:
// a default was substituted and the run continues.
type Warning struct {
	KeyElement string
	Attribute  string
	Message    string
}

func (w Warning) String() string {
	switch {
	case w.KeyElement == "":
		return w.Message
	case w.Attribute == "":
		return fmt.Sprintf("%s: %s", w.KeyElement, w.Message)
	default:
		return fmt.Sprintf("%s/%s: %s", w.KeyElement, w.Attribute, w.Message)
	}
}
