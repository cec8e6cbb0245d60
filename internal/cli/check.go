package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"bnfplay/internal/envconfig"
	"bnfplay/internal/suite"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check SUITE",
		Short: "Run the cases of an HCL test suite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parallel, _ := cmd.Flags().GetInt("parallel")
			if !cmd.Flags().Changed("parallel") {
				parallel = envconfig.Parallel
			}

			s, err := suite.Load(args[0])
			if err != nil {
				return err
			}
			results, err := suite.Run(cmd.Context(), s, suite.Options{Parallel: parallel, Logger: a.log})
			if err != nil {
				return err
			}

			var data [][]string
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
				}
				rule := r.Case.Rule
				if rule == "" {
					rule = "-"
				}
				data = append(data, []string{r.Case.Name, rule, r.Case.Mode, status, r.Detail()})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"CASE", "RULE", "MODE", "STATUS", "DETAIL"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			if failed := suite.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntP("parallel", "p", 4, "Maximum number of cases run at once")
	return cmd
}
