package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/core/prefs"
)

const pathTransferStudents = "/transferStudents"

var errNoUniversity = errors.New("no university selected: run `transfers university ID` or pass --university")

func (cli *commandLine) transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Transfer students between faculties",
	}

	universityCmd := &cobra.Command{
		Use:   "university [ID|none]",
		Short: "Show or select the university of the transfer screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.open(cmd.Context(), pathTransferStudents)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				id := prefs.NoUniversity
				if args[0] != "none" {
					if id, err = parseID(args[0]); err != nil {
						return err
					}
				}
				deps.Prefs.SetSelectedTransferUniversity(cmd.Context(), id)
			}

			if id := deps.Prefs.SelectedTransferUniversity(); id != prefs.NoUniversity {
				fmt.Fprintf(cli.out, "Selected university: %d\n", id)
			} else {
				fmt.Fprintln(cli.out, "Selected university: none")
			}
			return nil
		},
	}

	var facultyID, universityID int
	formFiltersCmd := &cobra.Command{
		Use:   "form-filters",
		Short: "List the transfer form options of a faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.open(cmd.Context(), pathTransferStudents)
			if err != nil {
				return err
			}
			if universityID == 0 {
				if universityID = deps.Prefs.SelectedTransferUniversity(); universityID == prefs.NoUniversity {
					return errNoUniversity
				}
			}
			filters, err := deps.Client.TransferStudents().FormFilters(cmd.Context(), facultyID, universityID)
			if err != nil {
				return err
			}
			return cli.printJSON(filters)
		},
	}
	formFiltersCmd.Flags().IntVar(&facultyID, "faculty", 0, "faculty ID")
	formFiltersCmd.Flags().IntVar(&universityID, "university", 0, "university ID (defaults to the selected one)")
	_ = formFiltersCmd.MarkFlagRequired("faculty")

	facultyCmd := &cobra.Command{
		Use:   "faculty ID",
		Short: "Show how many students a faculty can still receive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deps, err := cli.open(cmd.Context(), pathTransferStudents)
			if err != nil {
				return err
			}
			report, err := deps.Client.TransferStudents().FacultyData(cmd.Context(), id)
			if err != nil {
				return err
			}
			return cli.printJSON(report)
		},
	}

	cmd.AddCommand(universityCmd, formFiltersCmd, facultyCmd)
	return cmd
}
