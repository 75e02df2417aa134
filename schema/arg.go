package schema

import (
	"fmt"
	"reflect"

	"golang.org/x/text/cases"
	"gorm.io/resultmap/utils"
)

// Arg declares how one constructor argument of a target type is populated
// from a result row.
//
// GoType and TypeHandler are nil when not declared; a nil TypeHandler means
// the handler is picked from the column and parameter types at execution
// time.
type Arg struct {
	// ID marks the argument as an identity column, used to group rows of
	// nested collections.
	ID          bool
	Column      string
	GoType      reflect.Type
	JdbcType    JdbcType
	TypeHandler reflect.Type
	// Select is the id of a nested statement whose result becomes the argument.
	Select string
	// ResultMap is the id of a nested result map, ColumnPrefix applies to it.
	ResultMap    string
	Name         string
	ColumnPrefix string
	// Index is the position of the declaration at its declaration site. Args
	// binding by position are ordered by Index, so it must be distinct for
	// each of them whenever more than one arg binds by position.
	Index int
}

// Nested reports whether the argument value comes from another statement or result map
func (arg Arg) Nested() bool {
	return arg.Select != "" || arg.ResultMap != ""
}

// Validate checks the declaration on its own, independent of any constructor
func (arg Arg) Validate() error {
	if arg.Column == "" && !arg.Nested() {
		return fmt.Errorf("one of column, select or resultMap is required")
	}
	if arg.Select != "" && arg.ResultMap != "" {
		return fmt.Errorf("select %q and resultMap %q are mutually exclusive", arg.Select, arg.ResultMap)
	}
	if arg.ColumnPrefix != "" && arg.ResultMap == "" {
		return fmt.Errorf("columnPrefix %q requires a resultMap", arg.ColumnPrefix)
	}
	if arg.Index < 0 {
		return fmt.Errorf("negative index %d", arg.Index)
	}
	return nil
}

// ColumnKey is the logical column the argument reads, case folded. Identity
// arguments are compared by this key.
func (arg Arg) ColumnKey() string {
	key := arg.Column
	if key == "" {
		key = "resultMap:" + arg.ResultMap
		if arg.Select != "" {
			key = "select:" + arg.Select
		}
	}
	return cases.Fold().String(arg.ColumnPrefix + key)
}

func (arg Arg) String() string {
	var src string
	switch {
	case arg.Select != "":
		src = "select=" + arg.Select
	case arg.ResultMap != "":
		src = "resultMap=" + arg.ResultMap
	default:
		src = "column=" + arg.Column
	}
	if arg.Select != "" && arg.Column != "" {
		src += ",column=" + arg.Column
	}
	if arg.ColumnPrefix != "" {
		src += ",columnPrefix=" + arg.ColumnPrefix
	}
	if arg.Name != "" {
		src = "name=" + arg.Name + "," + src
	}
	if arg.ID {
		src = "id," + src
	}
	if arg.GoType != nil {
		src += ",goType=" + utils.TypeName(arg.GoType)
	}
	if arg.JdbcType != Undefined {
		src += ",jdbcType=" + arg.JdbcType.String()
	}
	if arg.TypeHandler != nil {
		src += ",typeHandler=" + utils.TypeName(arg.TypeHandler)
	}
	return "{" + src + "}"
}
