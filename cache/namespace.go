package cache

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samber/lo"
	"gorm.io/resultmap/schema"
)

// Declaration is one mapper's cache statement: either it owns a cache (no
// reference) or it uses the cache of the namespace named by RefType or
// RefName.
type Declaration struct {
	Namespace string
	// RefType references the namespace of a mapper type, see schema.Namer
	RefType reflect.Type
	RefName string
}

// Owner reports whether the declaration owns its cache
func (decl Declaration) Owner() bool {
	return decl.RefType == nil && decl.RefName == ""
}

const ownCache = "(own cache)"

type node struct {
	decl Declaration
	ref  string
}

// Graph holds namespace declarations and their refers-to edges
type Graph struct {
	namer schema.Namer
	nodes map[string]*node
	order []string
}

// NewGraph creates an empty graph, namer names the namespaces of RefType references
func NewGraph(namer schema.Namer) *Graph {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return &Graph{namer: namer, nodes: map[string]*node{}}
}

// Len number of declared namespaces
func (g *Graph) Len() int {
	return len(g.order)
}

// Add declares a namespace. Declaring the same namespace again with the same
// target is a no-op, with another target it is an error.
func (g *Graph) Add(decl Declaration) error {
	if decl.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidNamespace)
	}

	ref := decl.RefName
	if decl.RefType != nil {
		typeRef := g.namer.NamespaceName(decl.RefType)
		if ref != "" && ref != typeRef {
			return &ConflictingCacheReferenceError{Namespace: decl.Namespace, Targets: []string{typeRef, ref}}
		}
		ref = typeRef
	}

	if existing, ok := g.nodes[decl.Namespace]; ok {
		if existing.ref != ref {
			return &ConflictingCacheReferenceError{Namespace: decl.Namespace, Targets: []string{label(existing.ref), label(ref)}}
		}
		return nil
	}

	g.nodes[decl.Namespace] = &node{decl: decl, ref: ref}
	g.order = append(g.order, decl.Namespace)
	return nil
}

func label(ref string) string {
	if ref == "" {
		return ownCache
	}
	return ref
}

// Resolve walks every declared namespace to the namespace owning its cache
// and creates one cache per owner with factory.
//
// Namespaces are walked in declaration order. Every namespace on a finished
// walk is memoized with its owner, so each edge is followed at most once.
func (g *Graph) Resolve(factory Factory) (*Resolution, error) {
	if factory == nil {
		factory = LRUFactory(DefaultSize, 0)
	}

	owners := make(map[string]string, len(g.nodes))
	for _, id := range g.order {
		if _, ok := owners[id]; ok {
			continue
		}

		var (
			path   []string
			onPath = map[string]int{}
			cur    = id
			owner  string
		)
		for {
			if o, ok := owners[cur]; ok {
				owner = o
				break
			}
			if idx, ok := onPath[cur]; ok {
				return nil, &CacheNamespaceCycleError{Cycle: append([]string(nil), path[idx:]...)}
			}

			n, ok := g.nodes[cur]
			if !ok {
				return nil, &UnknownCacheNamespaceError{Namespace: path[len(path)-1], Ref: cur}
			}

			onPath[cur] = len(path)
			path = append(path, cur)
			if n.ref == "" {
				owner = cur
				break
			}
			cur = n.ref
		}

		for _, p := range path {
			owners[p] = owner
		}
	}

	resolution := &Resolution{
		owners: owners,
		caches: map[string]Cache{},
		order:  append([]string(nil), g.order...),
	}
	for _, id := range g.order {
		owner := owners[id]
		if _, ok := resolution.caches[owner]; ok {
			continue
		}

		c, err := factory(owner)
		if err != nil {
			return nil, fmt.Errorf("cache: create cache for namespace %q: %w", owner, err)
		}
		resolution.caches[owner] = c
	}
	return resolution, nil
}

// Group is a set of namespaces sharing the cache of Owner
type Group struct {
	Owner   string
	Members []string
	Cache   Cache
}

// Resolution maps every declared namespace to its owner and shared cache
type Resolution struct {
	owners map[string]string
	caches map[string]Cache
	order  []string
}

// Owner returns the namespace owning the cache used by namespace
func (r *Resolution) Owner(namespace string) (string, bool) {
	owner, ok := r.owners[namespace]
	return owner, ok
}

// Cache returns the cache used by namespace
func (r *Resolution) Cache(namespace string) (Cache, bool) {
	owner, ok := r.owners[namespace]
	if !ok {
		return nil, false
	}
	return r.caches[owner], true
}

// Namespaces returns every resolved namespace, in declaration order
func (r *Resolution) Namespaces() []string {
	return append([]string(nil), r.order...)
}

// Groups returns the namespaces grouped by owner, owners in the order their
// first member was declared, members sorted.
func (r *Resolution) Groups() []Group {
	members := lo.GroupBy(r.order, func(namespace string) string { return r.owners[namespace] })
	owners := lo.Uniq(lo.Map(r.order, func(namespace string, _ int) string { return r.owners[namespace] }))

	groups := make([]Group, 0, len(owners))
	for _, owner := range owners {
		names := members[owner]
		sort.Strings(names)
		groups = append(groups, Group{Owner: owner, Members: names, Cache: r.caches[owner]})
	}
	return groups
}
