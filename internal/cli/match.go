package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"bnfplay/internal/nfa"
)

// ErrNoMatch is returned after a negative result has been reported, so
// callers can exit non-zero without printing it again.
var ErrNoMatch = errors.New("no match")

func (a *app) matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match GRAMMAR",
		Short: "Report whether a grammar consumes the whole input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _ := cmd.Flags().GetString("rule")
			p, err := a.loadProgram(args[0], rule)
			if err != nil {
				return err
			}
			input, err := readInput(cmd)
			if err != nil {
				return err
			}

			if !p.Match(input) {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return ErrNoMatch
			}
			fmt.Fprintln(cmd.OutOrStdout(), "match")
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search GRAMMAR",
		Short: "List every leaf match found while walking the input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _ := cmd.Flags().GetString("rule")
			p, err := a.loadProgram(args[0], rule)
			if err != nil {
				return err
			}
			input, err := readInput(cmd)
			if err != nil {
				return err
			}

			paths := p.Search(input)
			var data [][]string
			for _, path := range paths {
				data = append(data, []string{
					strconv.Itoa(path.Start),
					strconv.Itoa(path.End),
					strconv.Quote(path.Text(input)),
					path.Matcher.String(),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"START", "END", "TEXT", "MATCHER"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			end := 0
			if len(paths) > 0 {
				end = paths[len(paths)-1].End
			}
			if !nfa.Covers(paths, input) {
				fmt.Fprintf(cmd.OutOrStdout(), "\nstopped at %d of %d bytes\n", end, len(input))
				return ErrNoMatch
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\ncovered %d bytes\n", len(input))
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}
