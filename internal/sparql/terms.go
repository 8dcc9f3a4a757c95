package sparql

import (
	"strings"

	"github.com/lblod/republisher/pkg/errors"
)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Literal renders s as a quoted SPARQL string literal.
func Literal(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

// IRI renders s as an IRI reference, rejecting characters that are not
// allowed inside angle brackets.
func IRI(s string) (string, error) {
	if s == "" || strings.ContainsAny(s, "<>\"{}|^`\\ \t\n\r") {
		return "", errors.NewValidationError("iri", s, "not a valid IRI reference")
	}
	return "<" + s + ">", nil
}

// MustIRI is IRI for values known to be valid, such as vocabulary constants.
func MustIRI(s string) string {
	iri, err := IRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}
