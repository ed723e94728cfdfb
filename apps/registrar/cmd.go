package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/registrar/apps/di"
	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/locale"
	"github.com/trezcool/registrar/core/router"
	backendsvc "github.com/trezcool/registrar/services/backend"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errEmptyPassword = errors.New("empty password")
)

// notAllowedError is returned when the guards refuse to open a feature's page.
type notAllowedError struct {
	out router.Outcome
}

func (e *notAllowedError) Error() string {
	return fmt.Sprintf("cannot open %s: redirected to %s", e.out.Location.Path, e.out.Redirect)
}

// userError carries the message shown for an error; errors.Cause still reaches the original.
type userError struct {
	cause error
	msg   string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Cause() error  { return e.cause }

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer

	newDeps func(ctx context.Context) (*di.Container, error) // mockable
	deps    *di.Container
}

func newCommandLine(conf *core.Config, logger core.Logger, out io.Writer) *commandLine {
	cli := &commandLine{conf: conf, logger: logger, out: out}
	cli.newDeps = func(ctx context.Context) (*di.Container, error) {
		return di.NewContainer(ctx, cli.conf, cli.logger)
	}
	return cli
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "registrar",
		Short:         "Student records administration client",
		Long:          "registrar talks to the student records backend on behalf of an administrator: it keeps the session, checks page permissions and runs the feature screens' queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		cli.setenvCmd(),
		cli.migrateCmd(),
		cli.loginCmd(),
		cli.logoutCmd(),
		cli.whoamiCmd(),
		cli.permissionsCmd(),
		cli.forgetPasswordCmd(),
		cli.checkTokenCmd(),
		cli.resetPasswordCmd(),
		cli.langCmd(),
		cli.navigateCmd(),
		cli.routesCmd(),
		cli.cdStudentsCmd(),
		cli.studentsCmd(),
		cli.transfersCmd(),
		cli.reportsCmd(),
	)
	return root
}

// run executes args (without the program name), then prints the pending toasts.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	err := root.ExecuteContext(ctx)
	if err != nil {
		err = &userError{cause: err, msg: cli.describe(err)}
	}
	if cli.deps != nil {
		cli.printToasts()
		if cErr := cli.deps.Close(); cErr != nil {
			cli.logger.Error("closing dependencies", cErr)
		}
		cli.deps = nil
	}
	return err
}

// container lazily sets up the stores and the backend client: setenv and routes run without them.
func (cli *commandLine) container(ctx context.Context) (*di.Container, error) {
	if cli.deps == nil {
		deps, err := cli.newDeps(ctx)
		if err != nil {
			return nil, err
		}
		cli.deps = deps
	}
	return cli.deps, nil
}

// open navigates to the page of a feature, as the UI would before calling its provider.
func (cli *commandLine) open(ctx context.Context, path string) (*di.Container, error) {
	deps, err := cli.container(ctx)
	if err != nil {
		return nil, err
	}
	out := deps.Router.Push(path, nil)
	if !out.Allowed {
		return nil, &notAllowedError{out: out}
	}
	return deps, nil
}

func (cli *commandLine) lang() locale.Lang {
	if cli.deps != nil {
		return cli.deps.Locale.Lang()
	}
	return locale.Lang(cli.conf.DefaultLang)
}

// describe renders err for the user in the current language.
func (cli *commandLine) describe(err error) string {
	switch origErr := errors.Cause(err).(type) {
	case *backendsvc.Error:
		return locale.ServerTranslate(origErr.Message, cli.lang())
	case validator.ValidationErrors:
		if cli.deps == nil {
			return origErr.Error()
		}
		fields := cli.deps.Translators.TranslateErrors(origErr)
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		msg := "invalid input:"
		for _, name := range names {
			msg += fmt.Sprintf("\n  %s: %s", name, fields[name])
		}
		return msg
	default:
		return err.Error()
	}
}

func (cli *commandLine) printToasts() {
	for _, msg := range cli.deps.Toasts.Drain(cli.lang()) {
		fmt.Fprintf(cli.out, "[%s] %s: %s\n", msg.Kind, msg.Title, msg.Detail)
	}
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "printing result")
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}
