package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/storage/database"
)

var errNoSQLStorage = errors.New("migrations need a SQL storage engine")

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate COMMAND",
		Short:     "Run client storage migrations",
		Long:      "migrate runs a migration command (" + strings.Join(database.MigrationCommands, ", ") + ") against the client storage. Pending migrations are also applied on every start.",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: database.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			if deps.DB == nil {
				return errNoSQLStorage
			}
			if err = database.RunMigration(deps.DB, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "migrate %s: done\n", args[0])
			return nil
		},
	}
}
