package schema

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/resultmap/utils"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor instantiates a model from positional arguments.
//
// Func must be a non-variadic function returning the model type (or a
// pointer to it), optionally followed by an error. Go keeps no parameter
// names at runtime, so ParamNames, when set, supplies them for name based
// argument binding.
type Constructor struct {
	Func       interface{}
	ParamNames []string

	params   []reflect.Type
	fields   []int
	implicit bool
	index    int
	model    *Model
}

// Params returns the formal parameter types
func (c *Constructor) Params() []reflect.Type {
	return c.params
}

// HasParamNames reports whether name based binding can target this constructor
func (c *Constructor) HasParamNames() bool {
	return len(c.ParamNames) > 0
}

// Implicit reports whether the constructor is the field-wise struct literal
// derived for a model that registered none.
func (c *Constructor) Implicit() bool {
	return c.implicit
}

// FieldIndexes returns the struct field indexes an implicit constructor assigns, in parameter order
func (c *Constructor) FieldIndexes() []int {
	return c.fields
}

// Same reports whether both describe the same constructor of the same model,
// also when they were registered through different Model values.
func (c *Constructor) Same(other *Constructor) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil || c.model == nil || other.model == nil || c.model.ModelType != other.model.ModelType {
		return false
	}
	if c.implicit || other.implicit {
		return c.implicit && other.implicit
	}
	if reflect.ValueOf(c.Func).Pointer() != reflect.ValueOf(other.Func).Pointer() || len(c.ParamNames) != len(other.ParamNames) {
		return false
	}
	for idx, name := range c.ParamNames {
		if other.ParamNames[idx] != name {
			return false
		}
	}
	return true
}

func (c *Constructor) String() string {
	params := make([]string, len(c.params))
	for idx, p := range c.params {
		params[idx] = utils.TypeName(p)
		if c.HasParamNames() {
			params[idx] = c.ParamNames[idx] + " " + params[idx]
		}
	}

	name := "<unbound>"
	if c.model != nil {
		name = c.model.Name
	}
	if c.implicit {
		return fmt.Sprintf("%s{%s}", name, strings.Join(params, ", "))
	}
	return fmt.Sprintf("%s#%d(%s)", name, c.index, strings.Join(params, ", "))
}

// Model is a target type of argument mapping together with its constructors
type Model struct {
	Name         string
	ModelType    reflect.Type
	Constructors []*Constructor
}

func (model Model) String() string {
	return utils.TypeName(model.ModelType)
}

// NewModel builds a Model for dest, which is either a reflect.Type or a value
// of the target type. Without constructors a struct model gets one implicit
// constructor taking its exported fields in declaration order.
func NewModel(dest interface{}, constructors ...Constructor) (*Model, error) {
	modelType, ok := dest.(reflect.Type)
	if !ok {
		if dest == nil {
			return nil, fmt.Errorf("%w: nil model", ErrInvalidConstructor)
		}
		modelType = reflect.TypeOf(dest)
	}
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	model := &Model{
		Name:      modelType.Name(),
		ModelType: modelType,
	}
	if model.Name == "" {
		model.Name = modelType.String()
	}

	if len(constructors) == 0 {
		if modelType.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s is not a struct and registers no constructor", ErrInvalidConstructor, model)
		}
		model.Constructors = append(model.Constructors, implicitConstructor(model))
		return model, nil
	}

	for idx := range constructors {
		ctor := constructors[idx]
		if err := model.bind(&ctor, idx); err != nil {
			return nil, err
		}
		model.Constructors = append(model.Constructors, &ctor)
	}
	return model, nil
}

func (model *Model) bind(ctor *Constructor, idx int) error {
	ctor.model, ctor.index = model, idx

	fn := reflect.ValueOf(ctor.Func)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s constructor #%d is %T, not a function", ErrInvalidConstructor, model, idx, ctor.Func)
	}

	fnType := fn.Type()
	if fnType.IsVariadic() {
		return fmt.Errorf("%w: %s constructor #%d is variadic", ErrInvalidConstructor, model, idx)
	}

	switch {
	case fnType.NumOut() == 1:
	case fnType.NumOut() == 2 && fnType.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s constructor #%d must return the model and an optional error", ErrInvalidConstructor, model, idx)
	}
	if utils.Indirect(fnType.Out(0)) != model.ModelType {
		return fmt.Errorf("%w: %s constructor #%d returns %s", ErrInvalidConstructor, model, idx, utils.TypeName(fnType.Out(0)))
	}

	ctor.params = make([]reflect.Type, fnType.NumIn())
	for i := range ctor.params {
		ctor.params[i] = fnType.In(i)
	}

	if ctor.HasParamNames() {
		if len(ctor.ParamNames) != len(ctor.params) {
			return fmt.Errorf("%w: %s constructor #%d has %d parameters but %d names", ErrInvalidConstructor, model, idx, len(ctor.params), len(ctor.ParamNames))
		}
		seen := make(map[string]bool, len(ctor.ParamNames))
		for _, name := range ctor.ParamNames {
			if name == "" || seen[name] {
				return fmt.Errorf("%w: %s constructor #%d has empty or duplicate parameter name %q", ErrInvalidConstructor, model, idx, name)
			}
			seen[name] = true
		}
	}
	return nil
}

func implicitConstructor(model *Model) *Constructor {
	ctor := &Constructor{implicit: true, model: model}
	for i := 0; i < model.ModelType.NumField(); i++ {
		if field := model.ModelType.Field(i); field.IsExported() {
			ctor.params = append(ctor.params, field.Type)
			ctor.fields = append(ctor.fields, i)
			ctor.ParamNames = append(ctor.ParamNames, field.Name)
		}
	}
	return ctor
}
