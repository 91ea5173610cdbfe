package ddlgen

import (
	"fmt"

	"o3ddl/internal/ddl"
	"o3ddl/internal/schema"
)

// Null-policy phrasings that depend on whether the target system stores PHI.
// The first one is spelled as published.
const (
	phiNotNullTypo = "No for systems alloing PHI. Yes for systems not allowing PHI"
	phiNotNull     = "No for systems allowing PHI. Yes for systems not allowing PHI"
	phiNull        = "Yes for systems allowing PHI. No for systems not allowing PHI"
)

// NullInput is what the nullability policy looks at.
type NullInput struct {
	Token      string // AllowNullValues as written
	PHIAllowed bool
	StringCode string
}

// NullRule yields Result when Match reports true.
type NullRule struct {
	Name   string
	Match  func(in NullInput) bool
	Result ddl.Nullability
}

func codeIs(code string, phi bool) func(NullInput) bool {
	return func(in NullInput) bool { return in.StringCode == code && in.PHIAllowed == phi }
}

func tokenIn(phi *bool, tokens ...string) func(NullInput) bool {
	return func(in NullInput) bool {
		if phi != nil && in.PHIAllowed != *phi {
			return false
		}
		for _, t := range tokens {
			if in.Token == t {
				return true
			}
		}
		return false
	}
}

var (
	phiYes = true
	phiNo  = false
)

// IdentifierOverrides are policy-mandated exceptions for two identifier
// fields. They are checked before NullRules and win regardless of the
// attribute's own null policy.
var IdentifierOverrides = []NullRule{
	{Name: "Patient_MRN with PHI", Match: codeIs("Patient_MRN", true), Result: ddl.NotNull},
	{Name: "Patient_MRN without PHI", Match: codeIs("Patient_MRN", false), Result: ddl.Null},
	{Name: "Patient_AnonPatID with PHI", Match: codeIs("Patient_AnonPatID", true), Result: ddl.Null},
	{Name: "Patient_AnonPatID without PHI", Match: codeIs("Patient_AnonPatID", false), Result: ddl.NotNull},
}

// NullRules is the general decision table over recognized tokens.
var NullRules = []NullRule{
	{
		Name: "nullable",
		Match: tokenIn(nil, "Yes", "True",
			"Yes, if diagnosis is for secondary cancer",
			"Yes, except when intervention is TURP"),
		Result: ddl.Null,
	},
	{Name: "not nullable", Match: tokenIn(nil, "No"), Result: ddl.NotNull},
	{Name: "not null under PHI", Match: tokenIn(&phiYes, phiNotNullTypo, phiNotNull), Result: ddl.NotNull},
	{Name: "null under PHI", Match: tokenIn(&phiYes, phiNull), Result: ddl.Null},
	{Name: "null without PHI", Match: tokenIn(&phiNo, phiNotNullTypo, phiNotNull), Result: ddl.Null},
	{Name: "not null without PHI", Match: tokenIn(&phiNo, phiNull), Result: ddl.NotNull},
}

// ResolveNullability decides NULL / NOT NULL for a. An unrecognized token
// resolves to NULL and returns a warning.
func ResolveNullability(a *schema.Attribute, phiAllowed bool) (ddl.Nullability, *schema.Warning) {
	in := NullInput{Token: a.AllowNullValues, PHIAllowed: phiAllowed, StringCode: a.StringCode}
	for _, chain := range [][]NullRule{IdentifierOverrides, NullRules} {
		for _, r := range chain {
			if r.Match(in) {
				return r.Result, nil
			}
		}
	}
	return ddl.Null, &schema.Warning{
		KeyElement: a.KeyElement,
		Attribute:  a.StringCode,
		Message:    fmt.Sprintf("unrecognized null policy %q; defaulting to NULL", a.AllowNullValues),
	}
}
