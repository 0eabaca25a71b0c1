package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sitegen/log"
	"github.com/ardnew/sitegen/site"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer command output goes to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// Site holds the flags that locate and shape the site. They are global so
// every command shares one view of the input tree.
type Site struct {
	Root        string `default:"${siteRoot}"        help:"Input root; \"/\" includes resolve against it" short:"r" type:"path"`
	Out         string `default:"${siteOut}"         help:"Output root directory"                         short:"o" type:"path"`
	Ext         string `default:"${siteExt}"         help:"Extension of renderable templates"`
	OutExt      string `default:"${siteOutExt}"      help:"Extension of rendered outputs"`
	Template    string `default:"${siteTemplate}"    help:"Output template, relative to the input root"`
	Placeholder string `default:"${sitePlaceholder}" help:"Token in the output template replaced by each document"`
	Jobs        int    `default:"1"                  help:"Files rendered concurrently; 0 uses every CPU"   short:"j"`
}

// SiteVars returns the kong variables holding the site defaults.
func SiteVars() kong.Vars {
	return kong.Vars{
		"siteRoot":        site.DefaultInputRoot,
		"siteOut":         site.DefaultOutputRoot,
		"siteExt":         site.DefaultRenderableExt,
		"siteOutExt":      site.DefaultOutputExt,
		"siteTemplate":    site.DefaultTemplate,
		"sitePlaceholder": site.DefaultPlaceholder,
	}
}

// SiteGroup returns the help group of the site flags.
func SiteGroup() kong.Group {
	return kong.Group{Key: "site", Title: "Site options"}
}

// New returns a [site.Site] configured from the flags.
func (f Site) New() *site.Site {
	return site.New(
		site.WithInputRoot(f.Root),
		site.WithOutputRoot(f.Out),
		site.WithRenderableExt(f.Ext),
		site.WithOutputExt(f.OutExt),
		site.WithTemplate(f.Template),
		site.WithPlaceholder(f.Placeholder),
		site.WithJobs(f.Jobs),
		site.WithProcessEnv(os.Environ()),
		site.WithLogger(log.Default()),
	)
}

type siteKey struct{}

// WithSite returns a new context.Context carrying the site flags.
func WithSite(ctx context.Context, flags Site) context.Context {
	return context.WithValue(ctx, siteKey{}, flags)
}

// siteFrom returns the site flags stored by [WithSite], or the defaults.
func siteFrom(ctx context.Context) Site {
	if flags, ok := ctx.Value(siteKey{}).(Site); ok {
		return flags
	}

	return Site{
		Root:        site.DefaultInputRoot,
		Out:         site.DefaultOutputRoot,
		Ext:         site.DefaultRenderableExt,
		OutExt:      site.DefaultOutputExt,
		Template:    site.DefaultTemplate,
		Placeholder: site.DefaultPlaceholder,
		Jobs:        1,
	}
}
