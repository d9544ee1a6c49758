package models

// ErrorTag labels a superficial defect class detected in a translation.
type ErrorTag string

const (
	// ErrorTagOmission flags hypotheses far shorter than the reference.
	ErrorTagOmission ErrorTag = "omission"
	// ErrorTagLexicalChoice flags hypothesis tokens absent from the reference.
	ErrorTagLexicalChoice ErrorTag = "lexical_choice"
	// ErrorTagCapitalization flags hypotheses starting with a lowercase letter.
	ErrorTagCapitalization ErrorTag = "capitalization"
)
