package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/resultmap/utils"
)

var (
	// ErrInvalidArgumentDeclaration argument declaration has no value source or misplaced attributes
	ErrInvalidArgumentDeclaration = errors.New("invalid argument declaration")
	// ErrNoSuitableConstructor no constructor matches the declared arguments
	ErrNoSuitableConstructor = errors.New("no suitable constructor")
	// ErrAmbiguousConstructor more than one constructor matches the declared arguments
	ErrAmbiguousConstructor = errors.New("ambiguous constructor")
	// ErrInvalidConstructor constructor is not a function producing the model type
	ErrInvalidConstructor = errors.New("invalid constructor")
	// ErrUnknownTypeAlias type alias is not registered
	ErrUnknownTypeAlias = errors.New("unknown type alias")
)

// InvalidArgumentDeclarationError reports a malformed Arg for a target type
type InvalidArgumentDeclarationError struct {
	Type   reflect.Type
	Index  int
	Reason string
}

func (e *InvalidArgumentDeclarationError) Error() string {
	return fmt.Sprintf("%s: %s argument #%d: %s", ErrInvalidArgumentDeclaration, utils.TypeName(e.Type), e.Index, e.Reason)
}

func (e *InvalidArgumentDeclarationError) Unwrap() error {
	return ErrInvalidArgumentDeclaration
}

// NoSuitableConstructorError reports that no constructor of Type accepts the declared arguments
type NoSuitableConstructorError struct {
	Type   reflect.Type
	Args   int
	Reason string
}

func (e *NoSuitableConstructorError) Error() string {
	msg := fmt.Sprintf("%s: %s has no constructor accepting %d declared arguments", ErrNoSuitableConstructor, utils.TypeName(e.Type), e.Args)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NoSuitableConstructorError) Unwrap() error {
	return ErrNoSuitableConstructor
}

// AmbiguousConstructorError reports several constructors of Type bound by the same arguments
type AmbiguousConstructorError struct {
	Type       reflect.Type
	Candidates []*Constructor
}

func (e *AmbiguousConstructorError) Error() string {
	names := make([]string, len(e.Candidates))
	for idx, c := range e.Candidates {
		names[idx] = c.String()
	}
	return fmt.Sprintf("%s: %s matches %s", ErrAmbiguousConstructor, utils.TypeName(e.Type), strings.Join(names, ", "))
}

func (e *AmbiguousConstructorError) Unwrap() error {
	return ErrAmbiguousConstructor
}
