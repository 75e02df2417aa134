package cache

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidNamespace namespace declaration without a namespace id
	ErrInvalidNamespace = errors.New("invalid cache namespace declaration")
	// ErrConflictingCacheReference namespace declares incompatible reference targets
	ErrConflictingCacheReference = errors.New("conflicting cache reference")
	// ErrCacheNamespaceCycle namespaces reference each other in a cycle
	ErrCacheNamespaceCycle = errors.New("cache namespace cycle")
	// ErrUnknownCacheNamespace referenced namespace is not declared
	ErrUnknownCacheNamespace = errors.New("unknown cache namespace")
)

// ConflictingCacheReferenceError reports a namespace whose reference targets disagree
type ConflictingCacheReferenceError struct {
	Namespace string
	Targets   []string
}

func (e *ConflictingCacheReferenceError) Error() string {
	return fmt.Sprintf("%s: namespace %q references %s", ErrConflictingCacheReference, e.Namespace, strings.Join(quote(e.Targets), " and "))
}

func (e *ConflictingCacheReferenceError) Unwrap() error {
	return ErrConflictingCacheReference
}

// CacheNamespaceCycleError reports the namespaces forming a reference cycle,
// in reference order starting from the first visited member.
type CacheNamespaceCycleError struct {
	Cycle []string
}

func (e *CacheNamespaceCycleError) Error() string {
	if len(e.Cycle) == 0 {
		return ErrCacheNamespaceCycle.Error()
	}
	path := append(append([]string(nil), e.Cycle...), e.Cycle[0])
	return fmt.Sprintf("%s: %s", ErrCacheNamespaceCycle, strings.Join(path, " -> "))
}

func (e *CacheNamespaceCycleError) Unwrap() error {
	return ErrCacheNamespaceCycle
}

// UnknownCacheNamespaceError reports a reference to an undeclared namespace
type UnknownCacheNamespaceError struct {
	Namespace string
	Ref       string
}

func (e *UnknownCacheNamespaceError) Error() string {
	return fmt.Sprintf("%s: namespace %q references %q, which is not declared", ErrUnknownCacheNamespace, e.Namespace, e.Ref)
}

func (e *UnknownCacheNamespaceError) Unwrap() error {
	return ErrUnknownCacheNamespace
}

func quote(values []string) []string {
	quoted := make([]string, len(values))
	for idx, v := range values {
		quoted[idx] = fmt.Sprintf("%q", v)
	}
	return quoted
}
