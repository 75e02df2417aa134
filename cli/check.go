package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gorm.io/resultmap"
	"gorm.io/resultmap/config"
	"gorm.io/resultmap/utils"
)

// ArgumentListResult the resolved constructor of one result map type
type ArgumentListResult struct {
	Type        string   `json:"type"`
	Constructor string   `json:"constructor"`
	Args        []string `json:"args"`
	IDs         []string `json:"ids,omitempty"`
}

// CheckResult holds everything a declaration file resolved to
type CheckResult struct {
	ArgumentLists []ArgumentListResult `json:"argumentLists"`
	Caches        *CachesResult        `json:"caches"`
}

// Text prints one line per argument list followed by the cache groups
func (result *CheckResult) Text(w io.Writer) error {
	for _, list := range result.ArgumentLists {
		if _, err := fmt.Fprintf(w, "%s: %s\n", list.Type, list.Constructor); err != nil {
			return err
		}
		for _, arg := range list.Args {
			if _, err := fmt.Fprintf(w, "  %s\n", arg); err != nil {
				return err
			}
		}
	}
	if len(result.ArgumentLists) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return result.Caches.Text(w)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Resolve every declaration of a file",
		Long: `Resolve the result maps and cache namespaces of a declaration file and
print the constructor each result map binds to.

Result map types must be registered as type aliases by the program
embedding the command.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	file, err := config.LoadFile(path)
	if err != nil {
		return formatter.Failure(err)
	}
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

	result := &CheckResult{}
	for _, t := range r.Types() {
		list, err := r.LookupArgumentList(t)
		if err != nil {
			return formatter.Failure(err)
		}

		item := ArgumentListResult{Type: utils.TypeName(t), Constructor: list.Constructor.String()}
		for _, arg := range list.Args {
			item.Args = append(item.Args, fmt.Sprintf("%d:%s", arg.Position, arg.Arg))
		}
		for _, arg := range list.IDs {
			item.IDs = append(item.IDs, arg.Column)
		}
		result.ArgumentLists = append(result.ArgumentLists, item)
	}

	if result.Caches, err = cacheGroups(r); err != nil {
		return formatter.Failure(err)
	}
	return formatter.Print(result)
}
