package schema

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	model, err := NewModel(&Author{}, Constructor{Func: NewAuthor}, Constructor{Func: NewAuthorWithPosts, ParamNames: []string{"id", "posts"}})
	require.NoError(t, err)

	assert.Equal(t, "Author", model.Name)
	assert.Equal(t, reflect.TypeOf(Author{}), model.ModelType)
	require.Len(t, model.Constructors, 2)
	assert.Equal(t, []reflect.Type{intType, stringType}, model.Constructors[0].Params())
	assert.False(t, model.Constructors[0].HasParamNames())
	assert.True(t, model.Constructors[1].HasParamNames())
	assert.Equal(t, "Author#0(int, string)", model.Constructors[0].String())
	assert.Equal(t, "Author#1(id int, posts []gorm.io/resultmap/schema.BlogPost)", model.Constructors[1].String())
}

func TestNewModelFromType(t *testing.T) {
	model, err := NewModel(reflect.TypeOf([]*Author{}), Constructor{Func: NewAuthor})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Author{}), model.ModelType)
}

func TestImplicitConstructor(t *testing.T) {
	model, err := NewModel(Author{})
	require.NoError(t, err)
	require.Len(t, model.Constructors, 1)

	ctor := model.Constructors[0]
	assert.True(t, ctor.Implicit())
	assert.Equal(t, []string{"ID", "Name", "Email", "Posts"}, ctor.ParamNames)
	assert.Equal(t, []int{0, 1, 2, 3}, ctor.FieldIndexes())
	assert.Equal(t, "Author{ID int, Name string, Email string, Posts []gorm.io/resultmap/schema.BlogPost}", ctor.String())
}

func TestInvalidConstructors(t *testing.T) {
	cases := []struct {
		name string
		dest interface{}
		ctor []Constructor
	}{
		{"nil model", nil, nil},
		{"not a function", Author{}, []Constructor{{Func: "NewAuthor"}}},
		{"variadic", Author{}, []Constructor{{Func: func(id int, names ...string) *Author { return nil }}}},
		{"wrong result", Author{}, []Constructor{{Func: func(id int) *BlogPost { return nil }}}},
		{"second result not error", Author{}, []Constructor{{Func: func(id int) (*Author, bool) { return nil, false }}}},
		{"no result", Author{}, []Constructor{{Func: func(id int) {}}}},
		{"names length", Author{}, []Constructor{{Func: NewAuthor, ParamNames: []string{"id"}}}},
		{"duplicate names", Author{}, []Constructor{{Func: NewAuthor, ParamNames: []string{"id", "id"}}}},
		{"empty name", Author{}, []Constructor{{Func: NewAuthor, ParamNames: []string{"id", ""}}}},
		{"scalar without constructors", 0, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewModel(c.dest, c.ctor...)
			if !errors.Is(err, ErrInvalidConstructor) {
				t.Fatalf("expected ErrInvalidConstructor, got %v", err)
			}
		})
	}
}

func TestScalarModelWithConstructor(t *testing.T) {
	type UserID int64

	model, err := NewModel(UserID(0), Constructor{Func: func(v int64) UserID { return UserID(v) }})
	require.NoError(t, err)
	assert.Equal(t, "UserID", model.Name)
	assert.Equal(t, []reflect.Type{int64Type}, model.Constructors[0].Params())
}

func TestConstructorSame(t *testing.T) {
	a, err := NewModel(Author{}, Constructor{Func: NewAuthor}, Constructor{Func: NewAuthorWithEmail})
	require.NoError(t, err)
	b, err := NewModel(Author{}, Constructor{Func: NewAuthor})
	require.NoError(t, err)
	named, err := NewModel(Author{}, Constructor{Func: NewAuthor, ParamNames: []string{"id", "name"}})
	require.NoError(t, err)

	assert.True(t, a.Constructors[0].Same(b.Constructors[0]))
	assert.False(t, a.Constructors[1].Same(b.Constructors[0]))
	assert.False(t, a.Constructors[0].Same(named.Constructors[0]))

	implicitA, err := NewModel(Author{})
	require.NoError(t, err)
	implicitB, err := NewModel(&Author{})
	require.NoError(t, err)
	assert.True(t, implicitA.Constructors[0].Same(implicitB.Constructors[0]))
	assert.False(t, implicitA.Constructors[0].Same(a.Constructors[0]))
	assert.False(t, implicitA.Constructors[0].Same(nil))
}
