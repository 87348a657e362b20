// Package er provides the structured error taxonomy used throughout
// txcore. Every fallible constructor, parser, and sighash computation
// returns an R instead of the bare error interface, so that callers can
// switch on a stable Kind rather than matching message substrings.
package er

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind identifies the category of a failure, independent of its message.
type Kind int

const (
	_ Kind = iota

	// Validation failures.
	KindLengthMismatch
	KindDustValue
	KindTooFewIO
	KindTooManyIO
	KindScriptTooLong
	KindWitnessItemTooLarge
	KindSegwitFlagMismatch
	KindWitnessLengthMismatch
	KindTxTooLarge
	KindInvalidTxIn
	KindInvalidTxOut

	// Decoding failures.
	KindTruncated
	KindMalformedVarInt
	KindNonCompactVarInt
	KindUnsupportedScriptLength

	// Semantic refusals.
	KindDisallowedSighashNone
	KindRefusedSighashSingleBug
	KindNotImplemented
	KindBadIndex

	// Profile misuse.
	KindProfileMisuse
	KindUnknownNetwork
)

var kindNames = map[Kind]string{
	KindLengthMismatch:          "LengthMismatch",
	KindDustValue:               "DustValue",
	KindTooFewIO:                "TooFewIO",
	KindTooManyIO:               "TooManyIO",
	KindScriptTooLong:           "ScriptTooLong",
	KindWitnessItemTooLarge:     "WitnessItemTooLarge",
	KindSegwitFlagMismatch:      "SegwitFlagMismatch",
	KindWitnessLengthMismatch:   "WitnessLengthMismatch",
	KindTxTooLarge:              "TxTooLarge",
	KindInvalidTxIn:             "InvalidTxIn",
	KindInvalidTxOut:            "InvalidTxOut",
	KindTruncated:               "Truncated",
	KindMalformedVarInt:         "MalformedVarInt",
	KindNonCompactVarInt:        "NonCompactVarInt",
	KindUnsupportedScriptLength: "UnsupportedScriptLength",
	KindDisallowedSighashNone:   "DisallowedSighashNone",
	KindRefusedSighashSingleBug: "RefusedSighashSingleBug",
	KindNotImplemented:          "NotImplemented",
	KindBadIndex:                "BadIndex",
	KindProfileMisuse:           "ProfileMisuse",
	KindUnknownNetwork:          "UnknownNetwork",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// R is the error type threaded through every txcore entry point. It is
// implemented only by *Error; callers that need the kind should use
// er.Is rather than a type assertion.
type R interface {
	error
	Kind() Kind
	// AddMessage prepends additional call-site context to the error as
	// it propagates up through a call stack.
	AddMessage(msg string) R
}

// Error is the sole implementation of R.
type Error struct {
	kind    Kind
	message string
	stack   *goerrors.Error
}

// New creates an Error of the given kind with a fixed message.
func New(kind Kind, message string) R {
	return &Error{kind: kind, message: message, stack: goerrors.New(message)}
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) R {
	msg := fmt.Sprintf(format, args...)
	return &Error{kind: kind, message: msg, stack: goerrors.New(msg)}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) AddMessage(msg string) R {
	e.message = msg + ": " + e.message
	return e
}

// Is reports whether err is a txcore R of the given kind.
func Is(err error, kind Kind) bool {
	r, ok := err.(R)
	return ok && r.Kind() == kind
}
