package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

const (
	dotEnvFile      = ".env"
	environmentsDir = "environments"
	frontendEnvFile = ".env.frontend"
)

var errMissingEnvArg = errors.New("missing environment type argument")

func (cli *commandLine) setenvCmd() *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "setenv ENV",
		Short: "Replace .env with the settings of an environment",
		Long:  "setenv copies environments/ENV/.env.frontend over the project's .env, creating it when missing.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errMissingEnvArg
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.setenv(args[0], showDiff)
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the changes made to .env")
	return cmd
}

func (cli *commandLine) setenv(env string, showDiff bool) error {
	src := filepath.Join(cli.conf.WorkDir, environmentsDir, env, frontendEnvFile)
	dst := filepath.Join(cli.conf.WorkDir, dotEnvFile)

	content, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s environment", env)
	}

	if showDiff {
		if err = cli.showEnvDiff(src, dst); err != nil {
			return err
		}
	}
	if err = os.WriteFile(dst, content, 0o644); err != nil {
		return errors.Wrap(err, "writing .env")
	}

	fmt.Fprintln(cli.out, "Frontend environment has been set to", env)
	return nil
}

func (cli *commandLine) showEnvDiff(src, dst string) error {
	selected, err := godotenv.Read(src)
	if err != nil {
		return errors.Wrap(err, "parsing selected environment")
	}

	current := map[string]string{}
	if _, err = os.Stat(dst); err == nil {
		if current, err = godotenv.Read(dst); err != nil {
			return errors.Wrap(err, "reading current .env")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "checking current .env")
	}
	return cli.printEnvDiff(current, selected)
}

func (cli *commandLine) printEnvDiff(current, selected map[string]string) error {
	before, err := godotenv.Marshal(current)
	if err != nil {
		return errors.Wrap(err, "marshalling current .env")
	}
	after, err := godotenv.Marshal(selected)
	if err != nil {
		return errors.Wrap(err, "marshalling selected .env")
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before + "\n"),
		B:        difflib.SplitLines(after + "\n"),
		FromFile: dotEnvFile,
		ToFile:   dotEnvFile,
		Context:  1,
	})
	if err != nil {
		return errors.Wrap(err, "diffing .env")
	}
	fmt.Fprint(cli.out, diff)
	return nil
}
