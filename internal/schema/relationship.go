package schema

import "fmt"

// Relationship categories that drive table structure.
const (
	ChildElementOf         = "ChildElement-Of"
	InstanceAssociatedWith = "InstanceAssociated-with"
)

// placeholderSubject is the template text the document uses for "no
// relationship". Rows carrying it are dropped at ingestion.
const placeholderSubject = "Subject Element"

// Relationship is a declared edge between two key elements, identified by
// their string-code tokens.
type Relationship struct {
	Subject     string
	Category    string
	Predicate   string
	Cardinality string
}

func (r Relationship) String() string {
	return fmt.Sprintf("%s %s %s", r.Subject, r.Category, r.Predicate)
}

func readRelationship(r fieldReader) (Relationship, bool, error) {
	var (
		rel Relationship
		err error
	)
	if rel.Subject, err = r.String("SubjectElement"); err != nil {
		return Relationship{}, false, err
	}
	if rel.Subject == placeholderSubject {
		return Relationship{}, false, nil
	}
	if rel.Category, err = r.String("RelationshipCategory"); err != nil {
		return Relationship{}, false, err
	}
	if rel.Predicate, err = r.String("PredicateElement"); err != nil {
		return Relationship{}, false, err
	}
	if rel.Cardinality, err = r.String("Cardinality"); err != nil {
		return Relationship{}, false, err
	}
	return rel, true, nil
}
