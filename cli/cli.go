package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sitegen/cli/cmd"
	"github.com/ardnew/sitegen/pkg"
)

// CLI is the top-level command-line interface for sitegen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Site  cmd.Site    `embed:"" group:"site"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Build  cmd.Build  `cmd:"" default:"1" help:"Render every template under the input root"`
	Render cmd.Render `cmd:""             help:"Preprocess one template and print it"`
	Markup cmd.Markup `cmd:""             help:"Convert markup text to HTML"`
	Eval   cmd.Eval   `cmd:""             help:"Run statements in a fresh environment"`
	Repl   cmd.Repl   `cmd:""             help:"Interactive session over one environment"`
	Init   cmd.Init   `cmd:""             help:"Write a configuration file"`
}

// Run executes the sitegen CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version":             pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier:  configPath(baseConfig + ".yaml"),
		cmd.ProjectIdentifier: projectConfig,
		cmd.HistoryIdentifier: filepath.Join(pkg.CacheDir(), "history"),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cmd.SiteVars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that messages emitted while
	// loading configuration already honor them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cmd.SiteGroup()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadYAML, configFiles()...),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSite(ctx, cli.Site)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ktx.BindTo(ctx, (*context.Context)(nil))

	return ktx.Run()
}
