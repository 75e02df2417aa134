package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gorm.io/resultmap/utils"
)

// BoundArg is an Arg bound to a constructor parameter
type BoundArg struct {
	Arg
	Position  int
	ParamName string
	ParamType reflect.Type
}

func (b *BoundArg) equal(other *BoundArg) bool {
	x, y := *b, *other
	// declaration position does not change a binding
	x.Index, y.Index = 0, 0
	return x == y
}

// ArgumentList is the resolved, ordered argument binding of one model
type ArgumentList struct {
	Model       *Model
	Constructor *Constructor
	// Args in constructor parameter order
	Args []*BoundArg
	// IDs the identity arguments, in parameter order
	IDs []*BoundArg
}

// Equal reports whether both lists bind the same constructor the same way
func (list *ArgumentList) Equal(other *ArgumentList) bool {
	if list == other {
		return true
	}
	if list == nil || other == nil {
		return false
	}
	if list.Model.ModelType != other.Model.ModelType || !list.Constructor.Same(other.Constructor) || len(list.Args) != len(other.Args) {
		return false
	}
	for idx, arg := range list.Args {
		if !arg.equal(other.Args[idx]) {
			return false
		}
	}
	return true
}

func (list *ArgumentList) String() string {
	args := lo.Map(list.Args, func(arg *BoundArg, _ int) string {
		return fmt.Sprintf("%d:%s", arg.Position, arg.Arg)
	})
	return fmt.Sprintf("%s [%s]", list.Constructor, strings.Join(args, " "))
}

// Resolve binds the declared args of model to exactly one of its constructors.
//
// When every arg carries a Name the args bind by parameter name, which needs
// constructors with ParamNames. Otherwise, also when only some args are
// named, args bind by Index order to parameter positions. The input order of
// args never affects the result.
func Resolve(model *Model, args []Arg) (*ArgumentList, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidConstructor)
	}

	args = append([]Arg(nil), args...)
	sort.SliceStable(args, func(i, j int) bool {
		return args[i].Index < args[j].Index
	})

	byName := len(args) > 0 && lo.EveryBy(args, func(arg Arg) bool { return arg.Name != "" })
	if err := validateArgs(model, args, byName); err != nil {
		return nil, err
	}

	var (
		candidates []*ArgumentList
		reasons    []string
	)
	if byName {
		if !lo.ContainsBy(model.Constructors, (*Constructor).HasParamNames) {
			return nil, &NoSuitableConstructorError{
				Type:   model.ModelType,
				Args:   len(args),
				Reason: "arguments bind by name but no constructor carries parameter names",
			}
		}
		for _, ctor := range model.Constructors {
			if list, reason := bindByName(model, ctor, args); list != nil {
				candidates = append(candidates, list)
			} else {
				reasons = append(reasons, reason)
			}
		}
	} else {
		for _, ctor := range model.Constructors {
			if list, reason := bindByPosition(model, ctor, args); list != nil {
				candidates = append(candidates, list)
			} else {
				reasons = append(reasons, reason)
			}
		}
	}

	switch len(candidates) {
	case 0:
		return nil, &NoSuitableConstructorError{Type: model.ModelType, Args: len(args), Reason: strings.Join(reasons, "; ")}
	case 1:
		list := candidates[0]
		list.IDs = lo.Filter(list.Args, func(arg *BoundArg, _ int) bool { return arg.ID })
		return list, nil
	default:
		return nil, &AmbiguousConstructorError{
			Type:       model.ModelType,
			Candidates: lo.Map(candidates, func(list *ArgumentList, _ int) *Constructor { return list.Constructor }),
		}
	}
}

func validateArgs(model *Model, args []Arg, byName bool) error {
	invalid := func(arg Arg, format string, a ...interface{}) error {
		return &InvalidArgumentDeclarationError{Type: model.ModelType, Index: arg.Index, Reason: fmt.Sprintf(format, a...)}
	}

	var (
		names      = map[string]bool{}
		indexes    = map[int]bool{}
		identities = map[string]bool{}
	)
	for _, arg := range args {
		if err := arg.Validate(); err != nil {
			return invalid(arg, "%s", err.Error())
		}

		if byName {
			if names[arg.Name] {
				return invalid(arg, "duplicate name %q", arg.Name)
			}
			names[arg.Name] = true
		} else {
			if indexes[arg.Index] {
				return invalid(arg, "duplicate index %d", arg.Index)
			}
			indexes[arg.Index] = true
		}

		if arg.ID {
			key := arg.ColumnKey()
			if identities[key] {
				return invalid(arg, "duplicate identity column %q", key)
			}
			identities[key] = true
		}
	}
	return nil
}

func bindByPosition(model *Model, ctor *Constructor, args []Arg) (*ArgumentList, string) {
	params := ctor.Params()
	if len(params) != len(args) {
		return nil, fmt.Sprintf("%s takes %d parameters", ctor, len(params))
	}

	list := &ArgumentList{Model: model, Constructor: ctor, Args: make([]*BoundArg, len(args))}
	for pos, arg := range args {
		if !assignable(arg.GoType, params[pos]) {
			return nil, fmt.Sprintf("%s parameter %d is %s, argument declares %s", ctor, pos, utils.TypeName(params[pos]), utils.TypeName(arg.GoType))
		}
		list.Args[pos] = bound(ctor, arg, pos)
	}
	return list, ""
}

func bindByName(model *Model, ctor *Constructor, args []Arg) (*ArgumentList, string) {
	if !ctor.HasParamNames() {
		return nil, fmt.Sprintf("%s has no parameter names", ctor)
	}

	params := ctor.Params()
	if len(params) != len(args) {
		return nil, fmt.Sprintf("%s takes %d parameters", ctor, len(params))
	}

	list := &ArgumentList{Model: model, Constructor: ctor, Args: make([]*BoundArg, len(args))}
	for _, arg := range args {
		pos := lo.IndexOf(ctor.ParamNames, arg.Name)
		if pos < 0 {
			return nil, fmt.Sprintf("%s has no parameter %q", ctor, arg.Name)
		}
		if !assignable(arg.GoType, params[pos]) {
			return nil, fmt.Sprintf("%s parameter %q is %s, argument declares %s", ctor, arg.Name, utils.TypeName(params[pos]), utils.TypeName(arg.GoType))
		}
		list.Args[pos] = bound(ctor, arg, pos)
	}
	return list, ""
}

func bound(ctor *Constructor, arg Arg, pos int) *BoundArg {
	b := &BoundArg{Arg: arg, Position: pos, ParamType: ctor.Params()[pos]}
	if ctor.HasParamNames() {
		b.ParamName = ctor.ParamNames[pos]
	}
	return b
}

// assignable reports whether a declared go type fits a parameter, an
// undeclared type is settled at execution time.
func assignable(declared, param reflect.Type) bool {
	return declared == nil || declared.AssignableTo(param)
}
