package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devVux/soutien/internal/pipeline"
)

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph <manifest.yaml>",
	Short: "Print a pipeline's dependency graph",
	Long: `Load a pipeline manifest and print its dependency graph without running
any task. The text format lists tasks in execution order with their
prerequisites; the dot format emits Graphviz DOT for rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := pipeline.LoadManifest(args[0])
		if err != nil {
			return err
		}

		p, err := manifest.Pipeline()
		if err != nil {
			return err
		}

		switch graphFormat {
		case "dot":
			fmt.Fprint(cmd.OutOrStdout(), p.Renderer().DOT())
		case "text":
			fmt.Fprint(cmd.OutOrStdout(), p.Renderer().TextSummary())
		default:
			return fmt.Errorf("unknown graph format %q (want text or dot)", graphFormat)
		}

		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "text", "Output format: text or dot")
}
