package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bnfplay/internal/dot"
)

func (a *app) dotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot GRAMMAR",
		Short: "Export the compiled automaton as a Graphviz graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _ := cmd.Flags().GetString("rule")
			outFile, _ := cmd.Flags().GetString("output")
			title, _ := cmd.Flags().GetString("title")
			rankdir, _ := cmd.Flags().GetString("rankdir")
			png, _ := cmd.Flags().GetBool("png")

			switch rankdir {
			case dot.RankLR, dot.RankTB:
			default:
				return fmt.Errorf("--rankdir must be %s or %s, got %q", dot.RankLR, dot.RankTB, rankdir)
			}

			p, err := a.loadProgram(args[0], rule)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := dot.Write(&buf, p.Export(), dot.Options{Title: title, RankDir: rankdir}); err != nil {
				return err
			}

			if outFile == "-" {
				if png {
					return dot.Render(cmd.Context(), buf.Bytes(), "png", cmd.OutOrStdout())
				}
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			f, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer f.Close()

			if png {
				if err := dot.Render(cmd.Context(), buf.Bytes(), "png", f); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PNG written to %s\n", outFile)
				return f.Close()
			}
			if _, err := f.Write(buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DOT written to %s\n", outFile)
			return f.Close()
		},
	}
	cmd.Flags().StringP("rule", "r", "", "Export a single top-level rule")
	cmd.Flags().StringP("output", "o", "graph.dot", "Output file, - for stdout")
	cmd.Flags().String("title", "", "Graph title")
	cmd.Flags().String("rankdir", dot.RankTB, "Layout direction (TB, LR)")
	cmd.Flags().Bool("png", false, "Render PNG via dot -Tpng")
	return cmd
}
