package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/lint"
	"github.com/dennwc/webidlstruct/resolve"
)

// patterns returns args, or the configured include patterns if args is
// empty.
func (a *app) patterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return a.cfg.Include
}

func (a *app) colorize(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if a.cfg.NoColor {
		c.DisableColor()
	}
	return c
}

type ASTHandler struct {
	app *app
}

func NewASTCommand(a *app) *cobra.Command {
	me := &ASTHandler{app: a}

	cmd := &cobra.Command{
		Use:   "ast [files...]",
		Short: "print the AST of each file",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *ASTHandler) Run(ctx context.Context, args []string) error {
	c, err := loadCorpus(ctx, me.app.fs, me.app.patterns(args))
	for _, res := range c.results {
		if res.File == nil {
			err = multierr.Append(err, errors.Errorf("%s: no AST could be built", res.Name))
			continue
		}
		fmt.Fprintf(me.app.out, "# %s\n", res.Name)
		switch me.app.cfg.Format {
		case FormatPretty:
			if derr := ast.Dump(me.app.out, res.File); derr != nil {
				return errors.Errorf("writing AST: %w", derr)
			}
		default:
			enc := yaml.NewEncoder(me.app.out)
			enc.SetIndent(2)
			if eerr := enc.Encode(res.File); eerr != nil {
				return errors.Errorf("encoding AST: %w", eerr)
			}
			if eerr := enc.Close(); eerr != nil {
				return errors.Errorf("encoding AST: %w", eerr)
			}
		}
	}
	return err
}

type TreeHandler struct {
	app *app
}

func NewTreeCommand(a *app) *cobra.Command {
	me := &TreeHandler{app: a}

	cmd := &cobra.Command{
		Use:   "tree [files...]",
		Short: "print the structural tree of each file",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *TreeHandler) Run(ctx context.Context, args []string) error {
	c, err := loadCorpus(ctx, me.app.fs, me.app.patterns(args))
	for _, res := range c.results {
		fmt.Fprintf(me.app.out, "# %s\n%s", res.Name, res.Tree)
	}
	return err
}

type CheckHandler struct {
	app *app
	fix bool
}

func NewCheckCommand(a *app) *cobra.Command {
	me := &CheckHandler{app: a}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "report syntax errors and style problems",
	}

	cmd.Flags().BoolVar(&me.fix, "fix", false, "apply the suggested fixes in place")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *CheckHandler) Run(ctx context.Context, args []string) error {
	c, err := loadCorpus(ctx, me.app.fs, me.app.patterns(args))

	var (
		red    = me.app.colorize(color.FgRed, color.Bold)
		yellow = me.app.colorize(color.FgYellow)
		faint  = me.app.colorize(color.Faint)
		green  = me.app.colorize(color.FgGreen)
	)
	problems := 0
	for _, res := range c.results {
		diags := lint.Check(res)
		var fixes []lint.Fix
		for _, d := range diags {
			severity := red
			if d.Severity == lint.SeverityWarning {
				severity = yellow
			}
			fmt.Fprintf(me.app.out, "%s %s %s\n",
				faint.Sprintf("%s:%d:%d:", res.Name, d.Range.StartLine, d.Range.StartColumn),
				severity.Sprint(d.Severity), d.Message)
			if d.Fix != nil {
				fixes = append(fixes, *d.Fix)
			}
		}
		problems += len(diags)

		if me.fix && len(fixes) > 0 {
			if ferr := me.apply(res.Name, res.Source, fixes); ferr != nil {
				err = multierr.Append(err, ferr)
				continue
			}
			fmt.Fprintf(me.app.out, "%s\n", green.Sprintf("%s: applied %d fixes", res.Name, len(fixes)))
			problems -= len(fixes)
		}
	}
	if problems > 0 {
		err = multierr.Append(err, errors.Errorf("found %d problems", problems))
	}
	return err
}

// apply writes src with fixes applied back to name. Fixes must not overlap.
func (me *CheckHandler) apply(name, src string, fixes []lint.Fix) error {
	sort.Slice(fixes, func(i, j int) bool {
		return fixes[i].Range.StartOffset > fixes[j].Range.StartOffset
	})
	for _, f := range fixes {
		src = f.Apply(src)
	}
	info, err := me.app.fs.Stat(name)
	if err != nil {
		return errors.Errorf("fixing %s: %w", name, err)
	}
	if err := afero.WriteFile(me.app.fs, name, []byte(src), info.Mode().Perm()); err != nil {
		return errors.Errorf("fixing %s: %w", name, err)
	}
	return nil
}

type ResolveHandler struct {
	app  *app
	kind string
}

func NewResolveCommand(a *app) *cobra.Command {
	me := &ResolveHandler{app: a}

	cmd := &cobra.Command{
		Use:   "resolve NAME [files...]",
		Short: "find the definitions a name refers to across files",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.kind, "kind", resolve.ParentInterface.String(),
		"lookup kind (parentInterface, parentDictionary, childInterfaces, childDictionaries, mixin, namespace)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args[0], args[1:])
	}

	return cmd
}

func (me *ResolveHandler) Run(ctx context.Context, name string, args []string) error {
	kind, ok := resolve.ParseKind(me.kind)
	if !ok {
		return errors.Errorf("unknown lookup kind %q", me.kind)
	}
	c, err := loadCorpus(ctx, me.app.fs, me.app.patterns(args))

	bold := me.app.colorize(color.Bold)
	for _, m := range resolve.Lookup(c.files(), kind, name) {
		id := m.Identifier
		fmt.Fprintf(me.app.out, "%s:%d:%d: %s\n",
			c.results[m.File].Name, id.Range.StartLine, id.Range.StartColumn, bold.Sprint(id.Value))
	}
	return err
}
