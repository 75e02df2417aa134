package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/resultmap/utils"
)

// ErrAliasRegistered alias already bound to another type
var ErrAliasRegistered = errors.New("alias already registered")

var builtinAliases = map[string]reflect.Type{
	"string":   reflect.TypeOf(""),
	"bool":     reflect.TypeOf(false),
	"int":      reflect.TypeOf(int(0)),
	"int8":     reflect.TypeOf(int8(0)),
	"int16":    reflect.TypeOf(int16(0)),
	"int32":    reflect.TypeOf(int32(0)),
	"int64":    reflect.TypeOf(int64(0)),
	"uint":     reflect.TypeOf(uint(0)),
	"uint8":    reflect.TypeOf(uint8(0)),
	"uint16":   reflect.TypeOf(uint16(0)),
	"uint32":   reflect.TypeOf(uint32(0)),
	"uint64":   reflect.TypeOf(uint64(0)),
	"byte":     reflect.TypeOf(byte(0)),
	"float32":  reflect.TypeOf(float32(0)),
	"float64":  reflect.TypeOf(float64(0)),
	"bytes":    reflect.TypeOf([]byte(nil)),
	"time":     reflect.TypeOf(time.Time{}),
	"duration": reflect.TypeOf(time.Duration(0)),
	"any":      reflect.TypeOf((*interface{})(nil)).Elem(),
	"map":      reflect.TypeOf(map[string]interface{}(nil)),
}

// TypeAliasRegistry maps case-insensitive aliases to types and models, so
// declarations that are not go code (e.g. YAML files) can reference them.
type TypeAliasRegistry struct {
	namer  Namer
	mux    sync.RWMutex
	types  map[string]reflect.Type
	models map[string]*Model
}

// NewTypeAliasRegistry returns a registry holding the builtin scalar aliases
func NewTypeAliasRegistry(namer Namer) *TypeAliasRegistry {
	if namer == nil {
		namer = NamingStrategy{}
	}

	registry := &TypeAliasRegistry{
		namer:  namer,
		types:  make(map[string]reflect.Type, len(builtinAliases)),
		models: map[string]*Model{},
	}
	for alias, t := range builtinAliases {
		registry.types[alias] = t
	}
	return registry
}

// RegisterType binds alias to t, an empty alias uses the namer's default
func (r *TypeAliasRegistry) RegisterType(alias string, t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type for alias %q", ErrInvalidConstructor, alias)
	}

	r.mux.Lock()
	defer r.mux.Unlock()
	_, err := r.registerType(alias, t)
	return err
}

func (r *TypeAliasRegistry) registerType(alias string, t reflect.Type) (string, error) {
	if alias == "" {
		alias = r.namer.TypeAlias(t)
	}
	key := strings.ToLower(alias)

	if registered, ok := r.types[key]; ok && registered != t {
		return key, fmt.Errorf("%w: %q is bound to %s, not %s", ErrAliasRegistered, alias, utils.TypeName(registered), utils.TypeName(t))
	}
	r.types[key] = t
	return key, nil
}

// RegisterModel binds alias to the model and its type, also registering the
// pluralized alias of the model's slice type.
func (r *TypeAliasRegistry) RegisterModel(alias string, model *Model) error {
	if model == nil {
		return fmt.Errorf("%w: nil model for alias %q", ErrInvalidConstructor, alias)
	}

	r.mux.Lock()
	defer r.mux.Unlock()

	key, err := r.registerType(alias, model.ModelType)
	if err != nil {
		return err
	}
	if _, err := r.registerType("", reflect.SliceOf(model.ModelType)); err != nil {
		return err
	}
	r.models[key] = model
	return nil
}

// ResolveType returns the type an alias is bound to
func (r *TypeAliasRegistry) ResolveType(alias string) (reflect.Type, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	if t, ok := r.types[strings.ToLower(alias)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTypeAlias, alias)
}

// Model returns the model registered under alias
func (r *TypeAliasRegistry) Model(alias string) (*Model, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	if model, ok := r.models[strings.ToLower(alias)]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("%w: no model registered as %q", ErrUnknownTypeAlias, alias)
}

// Aliases returns all registered aliases, sorted
func (r *TypeAliasRegistry) Aliases() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()

	aliases := make([]string, 0, len(r.types))
	for alias := range r.types {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
