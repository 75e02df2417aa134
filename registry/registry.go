package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync/atomic"

	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/logger"
	"gorm.io/resultmap/schema"
	"gorm.io/resultmap/utils"
)

var (
	// ErrDuplicateMapping conflicting registration for an already registered key
	ErrDuplicateMapping = errors.New("duplicate mapping")
	// ErrNotFound nothing registered for the key
	ErrNotFound = logger.ErrNotFound
	// ErrFrozen registry no longer accepts registrations
	ErrFrozen = errors.New("registry is frozen")
)

// DuplicateMappingError reports a conflicting re-registration
type DuplicateMappingError struct {
	Key      string
	Existing string
	Incoming string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("%s: %s is registered as %s, cannot rebind to %s", ErrDuplicateMapping, e.Key, e.Existing, e.Incoming)
}

func (e *DuplicateMappingError) Unwrap() error {
	return ErrDuplicateMapping
}

// NotFoundError reports a lookup of an unregistered type or namespace
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Key, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Registry holds the resolved argument lists and cache bindings of one
// configuration load.
//
// Registration is single-writer and happens before Freeze; callers that
// register from several goroutines must serialize themselves. After Freeze the
// registry is read-only and safe for concurrent lookups.
type Registry struct {
	argumentLists map[reflect.Type]*schema.ArgumentList
	caches        map[string]cache.Cache
	frozen        atomic.Bool
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		argumentLists: map[reflect.Type]*schema.ArgumentList{},
		caches:        map[string]cache.Cache{},
	}
}

// RegisterArgumentList binds the argument list of a target type. Registering
// an equal list again is a no-op.
func (r *Registry) RegisterArgumentList(target reflect.Type, list *schema.ArgumentList) error {
	if r.frozen.Load() {
		return ErrFrozen
	}
	if target == nil || list == nil {
		return fmt.Errorf("registry: nil target type or argument list")
	}

	if existing, ok := r.argumentLists[target]; ok {
		if existing.Equal(list) {
			return nil
		}
		return &DuplicateMappingError{Key: "type " + utils.TypeName(target), Existing: existing.String(), Incoming: list.String()}
	}
	r.argumentLists[target] = list
	return nil
}

// RegisterCacheBinding binds namespace to the cache it uses. Registering the
// same cache instance again is a no-op.
func (r *Registry) RegisterCacheBinding(namespace string, c cache.Cache) error {
	if r.frozen.Load() {
		return ErrFrozen
	}
	if namespace == "" || c == nil {
		return fmt.Errorf("registry: empty namespace or nil cache")
	}

	if existing, ok := r.caches[namespace]; ok {
		if existing == c {
			return nil
		}
		return &DuplicateMappingError{
			Key:      fmt.Sprintf("namespace %q", namespace),
			Existing: fmt.Sprintf("%s@%s", existing.ID(), existing.Instance()),
			Incoming: fmt.Sprintf("%s@%s", c.ID(), c.Instance()),
		}
	}
	r.caches[namespace] = c
	return nil
}

// LookupArgumentList returns the argument list registered for target
func (r *Registry) LookupArgumentList(target reflect.Type) (*schema.ArgumentList, error) {
	if list, ok := r.argumentLists[target]; ok {
		return list, nil
	}
	return nil, &NotFoundError{Kind: "argument list for type", Key: utils.TypeName(target)}
}

// LookupCache returns the cache namespace is bound to
func (r *Registry) LookupCache(namespace string) (cache.Cache, error) {
	if c, ok := r.caches[namespace]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "cache for namespace", Key: fmt.Sprintf("%q", namespace)}
}

// Freeze ends the registration phase
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether Freeze was called
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Types returns the registered target types, sorted by name
func (r *Registry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.argumentLists))
	for t := range r.argumentLists {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return utils.TypeName(types[i]) < utils.TypeName(types[j])
	})
	return types
}

// Namespaces returns the namespaces with a cache binding, sorted
func (r *Registry) Namespaces() []string {
	namespaces := make([]string, 0, len(r.caches))
	for ns := range r.caches {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	return namespaces
}
