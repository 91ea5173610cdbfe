package schema

import "fmt"

// KeyElement is a top-level clinical data entity. It maps 1:1 to a table.
type KeyElement struct {
	Element

	// Name is the KeyElementName of the document record.
	Name         string
	Longitudinal bool

	// Attributes keyed by value name; order holds first-seen order so that
	// generation is deterministic. A repeated value name replaces the
	// earlier attribute in place.
	attrs map[string]*Attribute
	order []string

	relationships []Relationship
}

// NewKeyElement builds a key element from one document record. Any missing
// required field aborts construction with a *FieldError.
func NewKeyElement(rec Record, opts BuildOptions) (*KeyElement, []Warning, error) {
	top := fieldReader{owner: recordName(rec), rec: rec}

	name, err := top.String("KeyElementName")
	if err != nil {
		return nil, nil, err
	}
	top.owner = name

	detail, err := top.Record("keyelementdetail")
	if err != nil {
		return nil, nil, err
	}
	dr := fieldReader{owner: name, rec: detail}
	el, err := readElement(dr)
	if err != nil {
		return nil, nil, err
	}
	longitudinal, err := dr.Flag("IsLongitudinalKeyElement")
	if err != nil {
		return nil, nil, err
	}

	ke := &KeyElement{
		Element:      el,
		Name:         name,
		Longitudinal: longitudinal,
		attrs:        map[string]*Attribute{},
	}

	attrRecs, err := top.Records("list_attributes")
	if err != nil {
		return nil, nil, err
	}
	var warnings []Warning
	codes := map[string]string{} // string code -> value name
	for _, ar := range attrRecs {
		a, ws, err := newAttribute(ke.StringCode, ar, opts)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)

		if other, ok := codes[a.StringCode]; ok && other != a.ValueName {
			return nil, nil, &FieldError{
				Record: name + "/" + a.ValueName,
				Field:  "StringCode",
				Err:    fmt.Errorf("%w: %q also used by %q", ErrDuplicateCode, a.StringCode, other),
			}
		}
		if prev, ok := ke.attrs[a.ValueName]; ok {
			delete(codes, prev.StringCode)
		}
		codes[a.StringCode] = a.ValueName
		ke.put(a)
	}

	relRecs, err := top.Records("list_relationships")
	if err != nil {
		return nil, nil, err
	}
	for _, rr := range relRecs {
		rel, ok, err := readRelationship(fieldReader{owner: name, rec: rr})
		if err != nil {
			return nil, nil, err
		}
		if ok {
			ke.relationships = append(ke.relationships, rel)
		}
	}

	return ke, warnings, nil
}

func (k *KeyElement) put(a *Attribute) {
	if _, ok := k.attrs[a.ValueName]; !ok {
		k.order = append(k.order, a.ValueName)
	}
	k.attrs[a.ValueName] = a
}

// Attributes returns the attributes in first-seen document order.
func (k *KeyElement) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(k.order))
	for _, name := range k.order {
		out = append(out, k.attrs[name])
	}
	return out
}

// Attribute looks an attribute up by value name.
func (k *KeyElement) Attribute(valueName string) (*Attribute, bool) {
	a, ok := k.attrs[valueName]
	return a, ok
}

// AttributeByCode looks an attribute up by string code.
func (k *KeyElement) AttributeByCode(code string) (*Attribute, bool) {
	for _, name := range k.order {
		if a := k.attrs[name]; a.StringCode == code {
			return a, true
		}
	}
	return nil, false
}

// Relationships returns a copy of the relationships declared on this
// element. Placeholder rows were already dropped.
func (k *KeyElement) Relationships() []Relationship {
	return append([]Relationship(nil), k.relationships...)
}

// ChildOf returns the ChildElement-Of relationships whose subject is this
// element: each one makes this table reference its parent.
func (k *KeyElement) ChildOf() []Relationship {
	var out []Relationship
	for _, r := range k.relationships {
		if r.Category == ChildElementOf && r.Subject == k.StringCode {
			out = append(out, r)
		}
	}
	return out
}

// InstanceOf returns the InstanceAssociated-with relationships whose
// predicate is this element.
func (k *KeyElement) InstanceOf() []Relationship {
	var out []Relationship
	for _, r := range k.relationships {
		if r.Category == InstanceAssociatedWith && r.Predicate == k.StringCode {
			out = append(out, r)
		}
	}
	return out
}

func (k *KeyElement) String() string { return k.Name }
