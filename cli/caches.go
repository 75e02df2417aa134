package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"gorm.io/resultmap"
	"gorm.io/resultmap/config"
	"gorm.io/resultmap/registry"
)

// CacheGroup namespaces sharing the cache of Owner
type CacheGroup struct {
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
}

// CachesResult holds the cache groups of a declaration file, sorted by owner.
type CachesResult struct {
	Groups     []CacheGroup `json:"groups"`
	Namespaces int          `json:"namespaces"`
}

// Text prints every owner followed by its indented members
func (result *CachesResult) Text(w io.Writer) error {
	for _, group := range result.Groups {
		if _, err := fmt.Fprintln(w, group.Owner); err != nil {
			return err
		}
		for _, member := range group.Members {
			if _, err := fmt.Fprintf(w, "  %s\n", member); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d caches, %d namespaces\n", len(result.Groups), result.Namespaces)
	return err
}

// NewCachesCommand creates the caches command.
func NewCachesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caches <file>",
		Short: "Show which namespaces share a cache",
		Long: `Resolve the cache namespace references of a declaration file and print
every cache owner with the namespaces sharing its cache.

Result maps in the file are ignored.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCaches(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCaches(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	file, err := config.LoadFile(path)
	if err != nil {
		return formatter.Failure(err)
	}
	file.ResultMaps = nil

	decls, err := file.Declarations(opts.aliases)
	if err != nil {
		return formatter.Failure(err)
	}
	loadOpts, err := loadOptions(opts, file, cmd.ErrOrStderr())
	if err != nil {
		return formatter.Failure(err)
	}

	r, err := resultmap.LoadContext(cmd.Context(), decls, loadOpts...)
	if err != nil {
		return formatter.Failure(err)
	}

	result, err := cacheGroups(r)
	if err != nil {
		return formatter.Failure(err)
	}
	return formatter.Print(result)
}

func cacheGroups(r *registry.Registry) (*CachesResult, error) {
	namespaces := r.Namespaces()
	owners := make(map[string]string, len(namespaces))
	for _, namespace := range namespaces {
		c, err := r.LookupCache(namespace)
		if err != nil {
			return nil, err
		}
		owners[namespace] = c.ID()
	}

	members := lo.GroupBy(namespaces, func(namespace string) string { return owners[namespace] })
	result := &CachesResult{Groups: make([]CacheGroup, 0, len(members)), Namespaces: len(namespaces)}
	for owner, names := range members {
		sort.Strings(names)
		result.Groups = append(result.Groups, CacheGroup{Owner: owner, Members: names})
	}
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Owner < result.Groups[j].Owner
	})
	return result, nil
}
