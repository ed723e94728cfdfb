package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/core/student"
	backendsvc "github.com/trezcool/registrar/services/backend"
)

func (cli *commandLine) reportsCmd() *cobra.Command {
	var filters []string
	var listFilters bool
	cmd := &cobra.Command{
		Use:       "reports NAME",
		Short:     "Run a statistics report (" + strings.Join(backendsvc.ReportNames(), ", ") + ")",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: backendsvc.ReportNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(filters)
			if err != nil {
				return err
			}
			deps, err := cli.open(cmd.Context(), "/"+args[0])
			if err != nil {
				return err
			}
			report, err := deps.Client.Report(args[0])
			if err != nil {
				return err
			}

			if listFilters {
				f, err := report.Filters(cmd.Context())
				if err != nil {
					return err
				}
				return cli.printJSON(f)
			}
			data, err := report.Data(cmd.Context(), student.ReportQuery(q))
			if err != nil {
				return err
			}
			return cli.printJSON(data)
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "report filter as key=value (repeatable)")
	cmd.Flags().BoolVar(&listFilters, "filters", false, "print the available filter values instead")
	return cmd
}
