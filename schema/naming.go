package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jinzhu/inflection"
	"gorm.io/resultmap/utils"
)

// Namer namer interface
type Namer interface {
	// NamespaceName is the cache namespace id of a mapper type
	NamespaceName(mapper reflect.Type) string
	// TypeAlias is the default alias a type registers under
	TypeAlias(t reflect.Type) string
}

// NamingStrategy namespaces and aliases naming strategy
type NamingStrategy struct {
	NamespacePrefix string
	// NoPluralAlias disables pluralized aliases for slice types
	NoPluralAlias bool
}

// NamespaceName package qualified type name, pointers are ignored
func (ns NamingStrategy) NamespaceName(mapper reflect.Type) string {
	return ns.NamespacePrefix + utils.TypeName(utils.Indirect(mapper))
}

// TypeAlias snake cased type name, slices of named types use the plural form
func (ns NamingStrategy) TypeAlias(t reflect.Type) string {
	t = utils.Indirect(t)
	if t.Kind() == reflect.Slice && utils.Indirect(t.Elem()).Name() != "" {
		name := toAliasName(utils.Indirect(t.Elem()).Name())
		if ns.NoPluralAlias {
			return name + "_list"
		}
		return inflection.Plural(name)
	}
	if t.Name() == "" {
		return t.String()
	}
	return toAliasName(t.Name())
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, initialism[:1]+strings.ToLower(initialism[1:]))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

// toAliasName converts a go identifier to snake case, e.g. AuthorID -> author_id
func toAliasName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}
