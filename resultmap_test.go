package resultmap_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/resultmap"
	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/logger"
	"gorm.io/resultmap/registry"
	"gorm.io/resultmap/schema"
)

type User struct {
	ID   int
	Name string
}

func NewUser(id int, name string) *User {
	return &User{ID: id, Name: name}
}

type Order struct {
	ID     int64
	Amount float64
}

func userModel(t *testing.T) *schema.Model {
	t.Helper()
	model, err := schema.NewModel(User{}, schema.Constructor{Func: NewUser, ParamNames: []string{"id", "name"}})
	require.NoError(t, err)
	return model
}

func orderModel(t *testing.T) *schema.Model {
	t.Helper()
	model, err := schema.NewModel(&Order{})
	require.NoError(t, err)
	return model
}

func declarations(t *testing.T) resultmap.Declarations {
	return resultmap.Declarations{
		Models: []resultmap.ModelDeclaration{
			{Model: userModel(t), Args: []schema.Arg{
				{Column: "user_name", Name: "name", Index: 1},
				{Column: "user_id", Name: "id", ID: true, Index: 0},
			}},
			{Model: orderModel(t), Args: []schema.Arg{
				{Column: "order_id", ID: true, Index: 0},
				{Column: "amount", Index: 1},
			}},
		},
		Namespaces: []cache.Declaration{
			{Namespace: "users"},
			{Namespace: "orders", RefName: "users"},
			{Namespace: "reports"},
		},
	}
}

func bufferLogger(buf *bytes.Buffer, level logger.LogLevel) logger.Interface {
	return logger.New(log.New(buf, "", 0), logger.Config{LogLevel: level})
}

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	r, err := resultmap.Load(declarations(t), resultmap.WithLogger(bufferLogger(&buf, logger.Info)))
	require.NoError(t, err)
	assert.True(t, r.Frozen())

	list, err := r.LookupArgumentList(reflect.TypeOf(User{}))
	require.NoError(t, err)
	require.Len(t, list.Args, 2)
	assert.Equal(t, "user_id", list.Args[0].Column)
	assert.Equal(t, "user_name", list.Args[1].Column)
	require.Len(t, list.IDs, 1)
	assert.Equal(t, "user_id", list.IDs[0].Column)

	orders, err := r.LookupArgumentList(reflect.TypeOf(Order{}))
	require.NoError(t, err)
	assert.True(t, orders.Constructor.Implicit())

	users, err := r.LookupCache("users")
	require.NoError(t, err)
	shared, err := r.LookupCache("orders")
	require.NoError(t, err)
	own, err := r.LookupCache("reports")
	require.NoError(t, err)
	assert.Same(t, users, shared)
	assert.NotSame(t, users, own)
	assert.Equal(t, "users", shared.ID())

	_, err = r.LookupCache("missing")
	assert.ErrorIs(t, err, resultmap.ErrNotFound)

	assert.Contains(t, buf.String(), "[bound:2]")
	assert.Contains(t, buf.String(), "cache namespaces (2 groups)")
	assert.Contains(t, buf.String(), "loaded 2 argument lists and 3 cache namespaces")

	err = r.RegisterCacheBinding("late", users)
	assert.ErrorIs(t, err, registry.ErrFrozen)
}

func TestLoadFailFast(t *testing.T) {
	ambiguous, err := schema.NewModel(User{},
		schema.Constructor{Func: NewUser},
		schema.Constructor{Func: func(id int, nickname string) User { return User{ID: id, Name: nickname} }},
	)
	require.NoError(t, err)

	tests := []struct {
		name  string
		decls func(resultmap.Declarations) resultmap.Declarations
		err   error
	}{
		{"nil model", func(d resultmap.Declarations) resultmap.Declarations {
			d.Models = append(d.Models, resultmap.ModelDeclaration{})
			return d
		}, resultmap.ErrModelValueRequired},
		{"ambiguous constructor", func(d resultmap.Declarations) resultmap.Declarations {
			d.Models[0] = resultmap.ModelDeclaration{Model: ambiguous, Args: []schema.Arg{{Column: "id"}, {Column: "name", Index: 1}}}
			return d
		}, resultmap.ErrAmbiguousConstructor},
		{"no suitable constructor", func(d resultmap.Declarations) resultmap.Declarations {
			d.Models[0].Args = d.Models[0].Args[:1]
			return d
		}, resultmap.ErrNoSuitableConstructor},
		{"invalid argument", func(d resultmap.Declarations) resultmap.Declarations {
			d.Models[1].Args = append(d.Models[1].Args, schema.Arg{Index: 2})
			return d
		}, resultmap.ErrInvalidArgumentDeclaration},
		{"duplicate model", func(d resultmap.Declarations) resultmap.Declarations {
			dup := d.Models[1]
			dup.Args = []schema.Arg{{Column: "id", Index: 0}, {Column: "total", Index: 1}}
			d.Models = append(d.Models, dup)
			return d
		}, resultmap.ErrDuplicateMapping},
		{"cycle", func(d resultmap.Declarations) resultmap.Declarations {
			d.Namespaces[0].RefName = "orders"
			return d
		}, resultmap.ErrCacheNamespaceCycle},
		{"unknown namespace", func(d resultmap.Declarations) resultmap.Declarations {
			d.Namespaces[2].RefName = "archive"
			return d
		}, resultmap.ErrUnknownCacheNamespace},
		{"conflicting reference", func(d resultmap.Declarations) resultmap.Declarations {
			d.Namespaces = append(d.Namespaces, cache.Declaration{Namespace: "orders", RefName: "reports"})
			return d
		}, resultmap.ErrConflictingCacheReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := resultmap.Load(tt.decls(declarations(t)), resultmap.WithLogger(bufferLogger(&buf, logger.Error)))
			assert.Nil(t, r)
			require.ErrorIs(t, err, tt.err)
			assert.Contains(t, buf.String(), err.Error())
		})
	}
}

func TestLoadOptions(t *testing.T) {
	var created []string
	factory := func(namespace string) (cache.Cache, error) {
		created = append(created, namespace)
		return cache.NewLRU(namespace, 4, 0)
	}

	_, err := resultmap.Load(declarations(t), resultmap.WithLogger(logger.Discard), resultmap.WithCacheFactory(factory), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "reports"}, created)

	failing := func(namespace string) (cache.Cache, error) {
		return nil, errors.New("no room")
	}
	_, err = resultmap.Load(declarations(t), resultmap.WithLogger(logger.Discard), resultmap.WithCacheFactory(failing))
	assert.ErrorContains(t, err, "no room")

	r, err := resultmap.Load(declarations(t), resultmap.WithLogger(logger.Discard), resultmap.WithCacheSize(1))
	require.NoError(t, err)
	c, err := r.LookupCache("users")
	require.NoError(t, err)
	c.Put("a", 1)
	c.Put("b", 2)
	assert.Equal(t, 1, c.Len())
}

func TestLoadNamespaceByType(t *testing.T) {
	type UserMapper struct{}

	namer := schema.NamingStrategy{NamespacePrefix: "app."}
	decls := resultmap.Declarations{Namespaces: []cache.Declaration{
		{Namespace: namer.NamespaceName(reflect.TypeOf(UserMapper{}))},
		{Namespace: "audit", RefType: reflect.TypeOf(UserMapper{})},
	}}

	r, err := resultmap.Load(decls, resultmap.WithLogger(logger.Discard), resultmap.WithNamingStrategy(namer))
	require.NoError(t, err)

	owner, err := r.LookupCache("audit")
	require.NoError(t, err)
	assert.Equal(t, namer.NamespaceName(reflect.TypeOf(UserMapper{})), owner.ID())
}

func TestReload(t *testing.T) {
	first, err := resultmap.Load(declarations(t), resultmap.WithLogger(logger.Discard))
	require.NoError(t, err)
	holder := registry.NewHolder(first)

	broken := declarations(t)
	broken.Namespaces[0].RefName = "users"
	_, err = resultmap.Reload(context.Background(), holder, broken, resultmap.WithLogger(logger.Discard))
	require.ErrorIs(t, err, resultmap.ErrCacheNamespaceCycle)
	assert.Same(t, first, holder.Load())

	second, err := resultmap.Reload(context.Background(), holder, declarations(t), resultmap.WithLogger(logger.Discard))
	require.NoError(t, err)
	assert.Same(t, second, holder.Load())
	assert.NotSame(t, first, second)
}
