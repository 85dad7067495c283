// Package errors provides error handling conventions for the azindex CLI.
//
// It defines sentinel errors for the two fatal conditions of the data
// contract (an empty corpus on the extraction side, unavailable manifest
// data on the query side), an ExitError type carrying a CLI exit code and
// suggestion, and re-exports of the cockroachdb/errors helpers used to
// wrap errors throughout the module.
//
// Callers check sentinel conditions with [Is]:
//
//	if errors.Is(err, errors.ErrEmptyCorpus) {
//	    // nothing was written; point the user at the docs root
//	}
package errors
