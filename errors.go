package resultmap

import (
	"errors"

	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/registry"
	"gorm.io/resultmap/schema"
)

var (
	// ErrModelValueRequired model declaration without model
	ErrModelValueRequired = errors.New("model value required")
	// ErrInvalidArgumentDeclaration invalid argument descriptor
	ErrInvalidArgumentDeclaration = schema.ErrInvalidArgumentDeclaration
	// ErrNoSuitableConstructor no constructor matches the argument list
	ErrNoSuitableConstructor = schema.ErrNoSuitableConstructor
	// ErrAmbiguousConstructor more than one constructor matches the argument list
	ErrAmbiguousConstructor = schema.ErrAmbiguousConstructor
	// ErrConflictingCacheReference namespace refers to two different caches
	ErrConflictingCacheReference = cache.ErrConflictingCacheReference
	// ErrCacheNamespaceCycle cache references form a cycle
	ErrCacheNamespaceCycle = cache.ErrCacheNamespaceCycle
	// ErrUnknownCacheNamespace cache reference to an undeclared namespace
	ErrUnknownCacheNamespace = cache.ErrUnknownCacheNamespace
	// ErrDuplicateMapping conflicting registration
	ErrDuplicateMapping = registry.ErrDuplicateMapping
	// ErrNotFound lookup miss
	ErrNotFound = registry.ErrNotFound
)
