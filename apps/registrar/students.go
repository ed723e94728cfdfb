package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/core/student"
	backendsvc "github.com/trezcool/registrar/services/backend"
)

const (
	pathCDStudents   = "/inquireCDStudent"
	pathStudentInfo  = "/inquireStudentInfo"
	pathGraduateInfo = "/inquireGraduateInfo"

	downloadPermissions = 0640
)

func addPaginationFlags(cmd *cobra.Command, p *student.Pagination) {
	cmd.Flags().IntVar(&p.Page, "page", 0, "page number, from 0")
	cmd.Flags().IntVar(&p.PerPage, "per-page", student.DefaultPerPage, fmt.Sprintf("page size (max %d)", student.MaxPerPage))
}

func (cli *commandLine) cdStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cd-students",
		Short: "Inquire the students of the secondary certificate files",
	}

	var query student.CDStudentQuery
	var searchType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Search the students of a certificate year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.open(cmd.Context(), pathCDStudents)
			if err != nil {
				return err
			}
			query.SearchType = student.SearchType(searchType)
			page, err := deps.Client.CDStudents().List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return cli.printJSON(page)
		},
	}
	listCmd.Flags().StringVar(&query.SelectedYear, "year", "", "certificate year")
	listCmd.Flags().StringVar(&searchType, "search-type", "", "nationalID, seatNumber or studentName")
	listCmd.Flags().StringVar(&query.SearchField, "search", "", "searched value")
	addPaginationFlags(listCmd, &query.Pagination)

	var key student.CDStudentKey
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show a student by national ID or seat number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.open(cmd.Context(), pathCDStudents)
			if err != nil {
				return err
			}
			st, err := deps.Client.CDStudents().Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			return cli.printJSON(st)
		},
	}
	getCmd.Flags().StringVar(&key.SelectedYear, "year", "", "certificate year")
	getCmd.Flags().StringVar(&key.NationalID, "nid", "", "national ID")
	getCmd.Flags().IntVar(&key.SeatNumber, "seat", 0, "seat number")

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}

func (cli *commandLine) studentsCmd() *cobra.Command {
	var graduates bool
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Inquire the council's students (or graduates with --graduates)",
	}
	cmd.PersistentFlags().BoolVar(&graduates, "graduates", false, "use the graduates screen")

	council := func(cmd *cobra.Command) (backendsvc.Council, error) {
		path := pathStudentInfo
		if graduates {
			path = pathGraduateInfo
		}
		deps, err := cli.open(cmd.Context(), path)
		if err != nil {
			return backendsvc.Council{}, err
		}
		if graduates {
			return deps.Client.GraduateInfo(), nil
		}
		return deps.Client.StudentInfo().Council, nil
	}

	var query student.Query
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Search students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := council(cmd)
			if err != nil {
				return err
			}
			page, err := c.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return cli.printJSON(page)
		},
	}
	listCmd.Flags().StringVar(&query.SelectedStudentType, "type", "", "student type")
	listCmd.Flags().StringVar(&query.NationalID, "nid", "", "national ID")
	listCmd.Flags().StringVar(&query.StudentName, "name", "", "student name")
	listCmd.Flags().StringVar(&query.University, "university", "", "university ID")
	listCmd.Flags().StringVar(&query.Faculty, "faculty", "", "faculty ID")
	listCmd.Flags().StringVar(&query.UniversityYear, "year", "", "university year")
	addPaginationFlags(listCmd, &query.Pagination)

	historyCmd := &cobra.Command{
		Use:   "history ID",
		Short: "Show the transactions of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := council(cmd)
			if err != nil {
				return err
			}
			history, err := c.History(cmd.Context(), id)
			if err != nil {
				return err
			}
			return cli.printJSON(history)
		},
	}

	cmd.AddCommand(listCmd, historyCmd, cli.attachmentsCmd(council))
	return cmd
}

func (cli *commandLine) attachmentsCmd(council func(*cobra.Command) (backendsvc.Council, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachments",
		Short: "Manage the files attached to a student",
	}

	uploadCmd := &cobra.Command{
		Use:   "upload UNIQUE_ID FILE...",
		Short: "Attach files to a student",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := council(cmd)
			if err != nil {
				return err
			}
			files := make([]backendsvc.File, 0, len(args)-1)
			for _, path := range args[1:] {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrap(err, "opening attachment")
				}
				//goland:noinspection GoDeferInLoop
				defer f.Close()
				files = append(files, backendsvc.File{Name: filepath.Base(path), Content: f})
			}
			res, err := c.UploadAttachments(cmd.Context(), args[0], files)
			if err != nil {
				return err
			}
			return cli.printJSON(res)
		},
	}

	var output string
	downloadCmd := &cobra.Command{
		Use:   "download FILE_ID",
		Short: "Download an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := council(cmd)
			if err != nil {
				return err
			}
			dl, err := c.DownloadAttachment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}
			if err = os.WriteFile(output, dl.Data, downloadPermissions); err != nil {
				return errors.Wrap(err, "saving attachment")
			}
			fmt.Fprintf(cli.out, "Saved %s (%s, %d bytes)\n", output, dl.ContentType, len(dl.Data))
			return nil
		},
	}
	downloadCmd.Flags().StringVarP(&output, "output", "o", "", "destination file (the file ID by default)")

	deleteCmd := &cobra.Command{
		Use:   "delete FILE_ID...",
		Short: "Remove attachments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := council(cmd)
			if err != nil {
				return err
			}
			files := make([]student.UploadedFile, len(args))
			for i, id := range args {
				files[i] = student.UploadedFile{AttachmentID: id}
			}
			res, err := c.DeleteAttachments(cmd.Context(), files)
			if err != nil {
				return err
			}
			return cli.printJSON(res)
		},
	}

	cmd.AddCommand(uploadCmd, downloadCmd, deleteCmd)
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid ID %q", s)
	}
	return id, nil
}
