package schema

// Attribute is one field of a key element. It becomes a column, or a
// foreign-key column into a lookup table when it carries standard values.
type Attribute struct {
	Element

	// KeyElement is the owning key element's string code.
	KeyElement string

	// DataType is the declared value data type. With cleaning enabled it is
	// one of CanonicalTypes.
	DataType string
	// RawDataType is DataType exactly as the document declared it.
	RawDataType string

	StandardValuesUse string
	StandardValues    []StandardValue
	// RawStandardValues keeps the document's StandardValuesList tokens.
	RawStandardValues []string

	// ReferenceSystem is empty when none is declared.
	ReferenceSystem string
	// AllowNullValues is the free-text null policy token.
	AllowNullValues string
	ValueExample    string
}

// Enumerated reports whether the attribute carries standard values.
func (a *Attribute) Enumerated() bool { return len(a.StandardValues) > 0 }

// Owner returns "<key element>/<value name>" for messages.
func (a *Attribute) Owner() string { return a.KeyElement + "/" + a.ValueName }

// BuildOptions controls model construction.
type BuildOptions struct {
	// Clean enables the normalization pass on every attribute.
	Clean bool
}

// DefaultBuildOptions returns the defaults: cleaning enabled.
func DefaultBuildOptions() BuildOptions { return BuildOptions{Clean: true} }

func newAttribute(keyElement string, rec Record, opts BuildOptions) (*Attribute, []Warning, error) {
	r := fieldReader{owner: keyElement + "/" + recordName(rec), rec: rec}

	el, err := readElement(r)
	if err != nil {
		return nil, nil, err
	}
	a := &Attribute{Element: el, KeyElement: keyElement}

	if a.RawDataType, err = r.String("ValueDataType"); err != nil {
		return nil, nil, err
	}
	a.DataType = a.RawDataType
	if a.StandardValuesUse, err = r.String("StandardValuesUse"); err != nil {
		return nil, nil, err
	}
	if a.RawStandardValues, err = r.Strings("StandardValuesList"); err != nil {
		return nil, nil, err
	}
	if a.ReferenceSystem, err = r.String("ReferenceSystemForValues"); err != nil {
		return nil, nil, err
	}
	if a.AllowNullValues, err = r.String("AllowNullValues"); err != nil {
		return nil, nil, err
	}
	if a.ValueExample, err = r.String("ValueExample"); err != nil {
		return nil, nil, err
	}

	a.StandardValues = make([]StandardValue, 0, len(a.RawStandardValues))
	for _, raw := range a.RawStandardValues {
		label, code, err := ParseStandardValue(raw)
		if err != nil {
			// Metadata rows are removed by cleaning anyway; only a real
			// enumeration entry without a code is fatal.
			if opts.Clean && isMetadataRow(raw) {
				continue
			}
			return nil, nil, &StandardValueError{
				KeyElement: keyElement,
				Attribute:  a.StringCode,
				Raw:        raw,
				Err:        err,
			}
		}
		a.StandardValues = append(a.StandardValues, StandardValue{
			KeyElement: keyElement,
			Attribute:  a.StringCode,
			Label:      label,
			Code:       code,
		})
	}

	if !opts.Clean {
		return a, nil, nil
	}
	return a, Clean(a), nil
}

// recordName is a best-effort label for a record that failed before its
// ValueName could be read.
func recordName(rec Record) string {
	if s, ok := scalarString(rec["ValueName"]); ok && s != "" {
		return s
	}
	if s, ok := scalarString(rec["StringCode"]); ok && s != "" {
		return s
	}
	return "?"
}
