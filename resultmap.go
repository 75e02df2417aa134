package resultmap

import (
	"context"
	"fmt"
	"time"

	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/registry"
	"gorm.io/resultmap/schema"
)

// ModelDeclaration the constructor arguments declared for a model
type ModelDeclaration struct {
	Model *schema.Model
	Args  []schema.Arg
}

// Declarations everything discovered for one registry
type Declarations struct {
	Models     []ModelDeclaration
	Namespaces []cache.Declaration
}

// Load resolves declarations into a frozen registry, it stops at the first error
func Load(decls Declarations, opts ...Option) (*registry.Registry, error) {
	return LoadContext(context.Background(), decls, opts...)
}

// LoadContext is Load with a context passed to the logger
func LoadContext(ctx context.Context, decls Declarations, opts ...Option) (*registry.Registry, error) {
	config := newConfig(opts)
	r := registry.New()

	for idx, decl := range decls.Models {
		if err := loadModel(ctx, config, r, decl); err != nil {
			if decl.Model == nil {
				config.Logger.Error(ctx, "model declaration #%d: %v", idx, err)
			}
			return nil, err
		}
	}

	if err := loadNamespaces(ctx, config, r, decls.Namespaces); err != nil {
		return nil, err
	}

	r.Freeze()
	config.Logger.Info(ctx, "loaded %d argument lists and %d cache namespaces", len(r.Types()), len(r.Namespaces()))
	return r, nil
}

// Reload loads declarations and, on success, swaps the result into holder.
// The holder keeps its current registry when loading fails.
func Reload(ctx context.Context, holder *registry.Holder, decls Declarations, opts ...Option) (*registry.Registry, error) {
	r, err := LoadContext(ctx, decls, opts...)
	if err != nil {
		return nil, err
	}
	holder.Swap(r)
	return r, nil
}

func loadModel(ctx context.Context, config *Config, r *registry.Registry, decl ModelDeclaration) (err error) {
	if decl.Model == nil {
		return ErrModelValueRequired
	}

	var (
		begin = time.Now()
		list  *schema.ArgumentList
	)
	defer func() {
		config.Logger.Trace(ctx, begin, func() (string, int64) {
			if list == nil {
				return decl.Model.String(), 0
			}
			return list.String(), int64(len(list.Args))
		}, err)
	}()

	if list, err = schema.Resolve(decl.Model, decl.Args); err != nil {
		return err
	}
	return r.RegisterArgumentList(decl.Model.ModelType, list)
}

func loadNamespaces(ctx context.Context, config *Config, r *registry.Registry, decls []cache.Declaration) (err error) {
	if len(decls) == 0 {
		return nil
	}

	var (
		begin      = time.Now()
		graph      = cache.NewGraph(config.NamingStrategy)
		resolution *cache.Resolution
	)
	defer func() {
		config.Logger.Trace(ctx, begin, func() (string, int64) {
			if resolution == nil {
				return fmt.Sprintf("cache namespaces (%d declared)", graph.Len()), 0
			}
			return fmt.Sprintf("cache namespaces (%d groups)", len(resolution.Groups())), int64(len(resolution.Namespaces()))
		}, err)
	}()

	for _, decl := range decls {
		if err = graph.Add(decl); err != nil {
			return err
		}
	}

	if resolution, err = graph.Resolve(config.CacheFactory); err != nil {
		return err
	}

	for _, namespace := range resolution.Namespaces() {
		c, _ := resolution.Cache(namespace)
		if err = r.RegisterCacheBinding(namespace, c); err != nil {
			return err
		}
	}
	return nil
}
