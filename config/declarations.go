package config

import (
	"fmt"
	"reflect"

	"gorm.io/resultmap"
	"gorm.io/resultmap/cache"
	"gorm.io/resultmap/logger"
	"gorm.io/resultmap/schema"
)

// Declarations converts the file into load declarations, type names are
// looked up in aliases.
func (file *File) Declarations(aliases *schema.TypeAliasRegistry) (resultmap.Declarations, error) {
	var decls resultmap.Declarations

	for idx, rm := range file.ResultMaps {
		model, err := aliases.Model(rm.Type)
		if err != nil {
			return decls, fmt.Errorf("resultMaps[%d]: %w", idx, err)
		}

		decl := resultmap.ModelDeclaration{Model: model, Args: make([]schema.Arg, 0, len(rm.Args))}
		for pos, arg := range rm.Args {
			a, err := arg.toArg(aliases, pos)
			if err != nil {
				return decls, fmt.Errorf("resultMaps[%d] (%s) args[%d]: %w", idx, rm.Type, pos, err)
			}
			decl.Args = append(decl.Args, a)
		}
		decls.Models = append(decls.Models, decl)
	}

	for idx, ns := range file.Namespaces {
		decl := cache.Declaration{Namespace: ns.Namespace, RefName: ns.Ref}
		if ns.RefType != "" {
			t, err := aliases.ResolveType(ns.RefType)
			if err != nil {
				return decls, fmt.Errorf("namespaces[%d] (%s): %w", idx, ns.Namespace, err)
			}
			decl.RefType = t
		}
		decls.Namespaces = append(decls.Namespaces, decl)
	}
	return decls, nil
}

func (arg Arg) toArg(aliases *schema.TypeAliasRegistry, pos int) (schema.Arg, error) {
	result := schema.Arg{
		ID:           arg.ID,
		Column:       arg.Column,
		Select:       arg.Select,
		ResultMap:    arg.ResultMap,
		Name:         arg.Name,
		ColumnPrefix: arg.ColumnPrefix,
		Index:        pos,
	}

	var err error
	if result.JdbcType, err = schema.ParseJdbcType(arg.JdbcType); err != nil {
		return result, err
	}
	if result.GoType, err = resolveAlias(aliases, arg.JavaType); err != nil {
		return result, err
	}
	if result.TypeHandler, err = resolveAlias(aliases, arg.TypeHandler); err != nil {
		return result, err
	}
	return result, nil
}

func resolveAlias(aliases *schema.TypeAliasRegistry, alias string) (reflect.Type, error) {
	if alias == "" {
		return nil, nil
	}
	return aliases.ResolveType(alias)
}

// Options returns the load options of the file settings, the log level
// applies to base.
func (file *File) Options(base logger.Interface) ([]resultmap.Option, error) {
	var opts []resultmap.Option

	if file.Settings.CacheSize > 0 {
		opts = append(opts, resultmap.WithCacheSize(file.Settings.CacheSize))
	}
	if file.Settings.CacheTTL > 0 {
		opts = append(opts, resultmap.WithCacheTTL(file.Settings.CacheTTL))
	}

	if file.Settings.LogLevel != "" {
		level, err := logger.ParseLevel(file.Settings.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: settings.logLevel: %v", ErrInvalidConfig, err)
		}
		if base == nil {
			base = logger.Default
		}
		base = base.LogMode(level)
	}
	if base != nil {
		opts = append(opts, resultmap.WithLogger(base))
	}
	return opts, nil
}
