package markup

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"heading", "# Title #", "<h1>Title</h1>"},
		{"subheading", "## Sub ##", "<h2>Sub</h2>"},
		{"paragraph", "hello world", "<p>hello world</p>\n"},
		{
			"paragraphs",
			"first\nline\n\nsecond",
			"<p>first\nline</p>\n<p>second</p>\n",
		},
		{
			"heading then paragraph",
			"# Title #\n\nbody",
			"<h1>Title</h1><p>body</p>\n",
		},
		{"bold", "**bold**", "<p><strong>bold</strong></p>\n"},
		{"italic", "a __b__ c", "<p>a <em>b</em> c</p>\n"},
		{
			"link",
			"[home](/index.html)",
			"<p><a href=\"/index.html\" target=\"_blank\">home</a></p>\n",
		},
		{
			"link same tab",
			"[home]=(/index.html)",
			"<p><a href=\"/index.html\">home</a></p>\n",
		},
		{
			"image",
			"![cat](cat.png)",
			`<div class="img" alt="cat" style="background-image: url('cat.png');"></div>`,
		},
		{
			"image classed",
			"![cat](cat.png)<wide>",
			`<div class="img wide" alt="cat" style="background-image: url('cat.png');"></div>`,
		},
		{"linebreak", `a\\b`, "<p>a<br/>b</p>\n"},
		{"nbsp", "a<>b", "<p>a&nbsp;b</p>\n"},
		{"html passes through", "<div>x</div>", "<div>x</div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Format(tt.in)); diff != "" {
				t.Errorf("Format(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestFormatInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__it__", "<em>it</em>"},
		{"# not a heading #", "# not a heading #"},
		{"[a](b)", `<a href="b" target="_blank">a</a>`},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatInline(tt.in); got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTwice(t *testing.T) {
	inputs := []string{
		"hello",
		"one\n\ntwo\n\nthree",
		"# Title #\n\nbody with **bold**",
		"[link](x)\n\n![img](y.png)",
	}

	for _, in := range inputs {
		once := Format(in)
		twice := Format(once)

		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Format not stable for %q (-once +twice):\n%s", in, diff)
		}

		if n := strings.Count(twice, "<p><p>"); n > 0 {
			t.Errorf("nested paragraphs in %q", twice)
		}
	}
}

func TestFormatConcurrent(t *testing.T) {
	var wg sync.WaitGroup

	for range 8 {
		wg.Go(func() {
			if got := Format("**x**"); got != "<p><strong>x</strong></p>\n" {
				t.Errorf("Format = %q", got)
			}
		})
	}

	wg.Wait()
}
