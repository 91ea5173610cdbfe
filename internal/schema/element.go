// Package schema is the in-memory object model of an O3 element document:
// key elements, their attributes, standard values and relationships.
//
// A Model is built once from decoded document records and is read-only
// afterwards. Attributes may be normalized by the cleaning pass (see Clean)
// while they are being constructed.
package schema

// Terminology holds the external terminology codes attached to an element.
type Terminology struct {
	SCTID string // SNOMED CT concept id
	NCITC string // NCI Thesaurus code
	NCIMT string // NCI Metathesaurus CUI
}

// Element is the descriptive field set shared by key elements and
// attributes. It is embedded by value.
type Element struct {
	ValueName      string
	ValueType      string
	StringCode     string
	NumericCode    string
	Definition     string
	ValuePriority  string
	MultipleValues bool
	Terminology    Terminology
}

func readElement(r fieldReader) (Element, error) {
	var (
		e   Element
		err error
	)
	strs := []struct {
		field string
		dst   *string
	}{
		{"ValueName", &e.ValueName},
		{"ValueType", &e.ValueType},
		{"StringCode", &e.StringCode},
		{"NumericCode", &e.NumericCode},
		{"Definition", &e.Definition},
		{"ValuePriority", &e.ValuePriority},
		{"SCTID", &e.Terminology.SCTID},
		{"NCITC", &e.Terminology.NCITC},
		{"NCIMT", &e.Terminology.NCIMT},
	}
	for _, s := range strs {
		if *s.dst, err = r.String(s.field); err != nil {
			return Element{}, err
		}
	}
	if e.MultipleValues, err = r.Flag("MoreThanOneValueAllowed"); err != nil {
		return Element{}, err
	}
	return e, nil
}

// String returns the element's value name.
func (e Element) String() string { return e.ValueName }
