// Command normalize hoists external and deep-pointer schemas in an already
// bundled OpenAPI 3.x document into components.schemas and rewrites
// references to match.
//
// Grounded on the teacher lineage's openapi/cmd/bundle.go: the same
// -w/--write in-place flag, a --naming flag selecting the component-naming
// source, and stdout-by-default, pipe-friendly output.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "normalize [input-file] [output-file]",
		Short: "Hoist external and deep-pointer schemas into components.schemas",
		Long: `normalize rewrites an already-bundled OpenAPI 3.x document so that every
reusable schema lives under #/components/schemas/<Name> and every reference
to it uses that component pointer, instead of a deep document pointer or an
external file path.

Examples:
  # Normalize to stdout (pipe-friendly)
  normalize ./bundled-spec.yaml

  # Normalize to a specific file
  normalize ./bundled-spec.yaml ./normalized-spec.yaml

  # Normalize in place
  normalize -w ./bundled-spec.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runNormalizeCommand,
	}

	root.Flags().BoolP("write", "w", false, "Write the normalized document back to the input file")
	root.Flags().String("naming", "pointer", "Naming strategy for a deep-pointer schema with no known external candidate name: pointer-derived (pointer) or a Schema_N counter (counter). Hoisted external schemas always use source-path-derived names, unaffected by this flag.")

	return root
}
