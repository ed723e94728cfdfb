package main

import (
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/core/locale"
	"github.com/trezcool/registrar/core/router"
)

func (cli *commandLine) langCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "lang [ar|en]",
		Short:     "Switch the interface language; toggles without argument",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(locale.Arabic), string(locale.English)},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			var lang locale.Lang
			if len(args) == 0 {
				lang = deps.Locale.ChangeLang(cmd.Context())
			} else {
				if lang, err = locale.ParseLang(args[0]); err != nil {
					return err
				}
				lang = deps.Locale.ChangeLang(cmd.Context(), lang)
			}
			fmt.Fprintf(cli.out, "Language: %s (%s)\n", lang, deps.Locale.TextDirection())
			return nil
		},
	}
}

func (cli *commandLine) navigateCmd() *cobra.Command {
	var query []string
	cmd := &cobra.Command{
		Use:   "navigate PATH",
		Short: "Check where navigating to PATH lands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			out := deps.Router.Push(args[0], q)
			if out.Allowed {
				fmt.Fprintf(cli.out, "allowed: %s\n", out.Location.FullPath())
			} else {
				fmt.Fprintf(cli.out, "redirected: %s -> %s\n", out.Location.FullPath(), deps.Router.Current().FullPath())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter as key=value (repeatable)")
	return cmd
}

func (cli *commandLine) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the pages and the application guarding them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME\tACCESS")
			for _, r := range router.DefaultTable().Records() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.Name, routeAccess(r))
			}
			return errors.Wrap(w.Flush(), "printing routes")
		},
	}
}

func routeAccess(r *router.Route) string {
	switch {
	case r.Redirect != "":
		return "-> " + r.Redirect
	case r.Public:
		return "public"
	case r.Application != 0:
		return r.Application.String()
	default:
		return "authenticated"
	}
}

// parseQuery turns key=value pairs into url.Values.
func parseQuery(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := url.Values{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid parameter %q: want key=value", pair)
		}
		q.Add(k, v)
	}
	return q, nil
}
