package schema

import (
	"fmt"
	"sort"
)

// StandardValueList is the enumeration of one attribute.
type StandardValueList struct {
	KeyElement string
	Attribute  string
	Values     []StandardValue
}

// Model is the full key-element graph of one document. It is rebuilt per
// run; aggregates are computed once by NewModel and never change.
type Model struct {
	keyElements []*KeyElement
	byName      map[string]int
	byCode      map[string]int

	// Distinct, sorted aggregates over all attributes.
	ValueDataTypes   []string
	ValuePriorities  []string
	ReferenceSystems []string
	AllowNullTokens  []string

	// StandardValueLists holds every enumerated attribute in document order.
	StandardValueLists []StandardValueList
}

// NewModel builds the model from decoded document records. Records are
// kept in document order. A repeated KeyElementName replaces the earlier
// key element in place; distinct key elements must not share a string code.
func NewModel(records []Record, opts BuildOptions) (*Model, []Warning, error) {
	m := &Model{byName: map[string]int{}, byCode: map[string]int{}}

	var warnings []Warning
	for _, rec := range records {
		ke, ws, err := NewKeyElement(rec, opts)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)

		if i, ok := m.byName[ke.Name]; ok {
			prev := m.keyElements[i]
			delete(m.byCode, prev.StringCode)
			warnings = append(warnings, Warning{
				KeyElement: ke.StringCode,
				Message:    fmt.Sprintf("key element %q declared more than once; last declaration wins", ke.Name),
			})
			m.keyElements[i] = ke
		} else {
			m.byName[ke.Name] = len(m.keyElements)
			m.keyElements = append(m.keyElements, ke)
		}

		if j, ok := m.byCode[ke.StringCode]; ok && m.keyElements[j] != ke {
			return nil, nil, &FieldError{
				Record: ke.Name,
				Field:  "StringCode",
				Err:    fmt.Errorf("%w: %q also used by %q", ErrDuplicateCode, ke.StringCode, m.keyElements[j].Name),
			}
		}
		m.byCode[ke.StringCode] = m.byName[ke.Name]
	}

	m.aggregate()
	return m, warnings, nil
}

func (m *Model) aggregate() {
	types := map[string]struct{}{}
	priorities := map[string]struct{}{}
	refs := map[string]struct{}{}
	nulls := map[string]struct{}{}

	for _, ke := range m.keyElements {
		for _, a := range ke.Attributes() {
			types[a.DataType] = struct{}{}
			priorities[a.ValuePriority] = struct{}{}
			if a.ReferenceSystem != "" {
				refs[a.ReferenceSystem] = struct{}{}
			}
			nulls[a.AllowNullValues] = struct{}{}

			if a.Enumerated() {
				m.StandardValueLists = append(m.StandardValueLists, StandardValueList{
					KeyElement: ke.StringCode,
					Attribute:  a.StringCode,
					Values:     append([]StandardValue(nil), a.StandardValues...),
				})
			}
		}
	}

	m.ValueDataTypes = sortedKeys(types)
	m.ValuePriorities = sortedKeys(priorities)
	m.ReferenceSystems = sortedKeys(refs)
	m.AllowNullTokens = sortedKeys(nulls)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// KeyElements returns the key elements in document order.
func (m *Model) KeyElements() []*KeyElement {
	return append([]*KeyElement(nil), m.keyElements...)
}

// Len returns the number of key elements.
func (m *Model) Len() int { return len(m.keyElements) }

// KeyElement looks a key element up by KeyElementName.
func (m *Model) KeyElement(name string) (*KeyElement, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.keyElements[i], true
}

// KeyElementByCode looks a key element up by string code.
func (m *Model) KeyElementByCode(code string) (*KeyElement, bool) {
	i, ok := m.byCode[code]
	if !ok {
		return nil, false
	}
	return m.keyElements[i], true
}

// Owners resolves a standard value's back-references.
func (m *Model) Owners(sv StandardValue) (*KeyElement, *Attribute, bool) {
	ke, ok := m.KeyElementByCode(sv.KeyElement)
	if !ok {
		return nil, nil, false
	}
	a, ok := ke.AttributeByCode(sv.Attribute)
	if !ok {
		return ke, nil, false
	}
	return ke, a, true
}

// RelationshipEndpoints returns the distinct subject tokens, predicate
// tokens and categories used across all relationships, each sorted.
func (m *Model) RelationshipEndpoints() (subjects, predicates, categories []string) {
	s := map[string]struct{}{}
	p := map[string]struct{}{}
	c := map[string]struct{}{}
	for _, ke := range m.keyElements {
		for _, r := range ke.relationships {
			s[r.Subject] = struct{}{}
			p[r.Predicate] = struct{}{}
			c[r.Category] = struct{}{}
		}
	}
	return sortedKeys(s), sortedKeys(p), sortedKeys(c)
}
