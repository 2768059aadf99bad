package selector

import (
	"testing"

	"github.com/xylonx/hql/html"
)

func parseDoc(t *testing.T, src string) *html.Document {
	t.Helper()
	doc, err := html.ParseDocumentString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

// apply runs one selector over a working set, flat-mapping the results.
func apply(s Selector, nodes []html.Ref) []html.Ref {
	var out []html.Ref
	for _, n := range nodes {
		out = append(out, s.Select(n)...)
	}
	return out
}

func texts(nodes []html.Ref) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.String())
	}
	return out
}

func TestFlatSelector(t *testing.T) {
	doc := parseDoc(t, `<body><div><a>x</a></div><p>y</p></body>`)
	got := NewFlatSelector().Select(doc.Root())

	var tags []string
	for _, r := range got {
		if e, ok := r.(html.ElementRef); ok && e.TagName() != "" {
			tags = append(tags, e.TagName())
		}
	}
	want := []string{"html", "head", "body", "div", "a", "p"}
	if len(tags) != len(want) {
		t.Fatalf("got tags %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag %d: got %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestPathSelector(t *testing.T) {
	doc := parseDoc(t, `<body><section><div><a href="1">one</a></div></section><div><a href="2">two</a></div></body>`)

	// A single step only looks at immediate children; there is no div child
	// of the root html element.
	single := NewPathSelector([]PathStep{{PathSingle, "div"}})
	if got := apply(single, doc.Root().TraverseChildren(false)); len(got) != 0 {
		t.Fatalf("single step found %d nodes, want 0", len(got))
	}

	// A travel step reaches both divs anywhere below body.
	travel := NewPathSelector([]PathStep{{PathSingle, "body"}, {PathTravel, "div"}, {PathSingle, "a"}})
	got := apply(travel, []html.Ref{mustHTML(t, doc)})
	if len(got) != 2 {
		t.Fatalf("got %d anchors, want 2", len(got))
	}
	for i, want := range []string{"1", "2"} {
		e := got[i].(html.ElementRef)
		if v, _ := e.Attr("href"); v != want {
			t.Errorf("anchor %d: href %q, want %q", i, v, want)
		}
	}

	// Tag matching is case-insensitive.
	upper := NewPathSelector([]PathStep{{PathSingle, "BODY"}, {PathTravel, "A"}})
	if got := apply(upper, []html.Ref{mustHTML(t, doc)}); len(got) != 2 {
		t.Errorf("uppercase tags matched %d nodes, want 2", len(got))
	}
}

// mustHTML returns the html element of a parsed document.
func mustHTML(t *testing.T, doc *html.Document) html.Ref {
	t.Helper()
	for _, c := range doc.Root().TraverseChildren(false) {
		if e, ok := c.(html.ElementRef); ok && e.TagName() == "html" {
			return c
		}
	}
	t.Fatal("no html element")
	return nil
}

func TestAttrSelector(t *testing.T) {
	doc := parseDoc(t, `<body><a href="x" target="_BLANK">a</a><a>b</a></body>`)
	anchors := apply(NewPathSelector([]PathStep{{PathTravel, "a"}}), []html.Ref{doc.Root()})
	if len(anchors) != 2 {
		t.Fatalf("got %d anchors, want 2", len(anchors))
	}

	if got := apply(NewAttrSelector("href"), anchors); len(got) != 1 {
		t.Errorf("presence: got %d, want 1", len(got))
	}

	// Attribute values compare case-insensitively.
	if got := apply(NewAttrValueSelector("target", "_blank"), anchors); len(got) != 1 {
		t.Errorf("value: got %d, want 1", len(got))
	}
	if got := apply(NewAttrValueSelector("target", "_self"), anchors); len(got) != 0 {
		t.Errorf("mismatched value: got %d, want 0", len(got))
	}

	// Non-element references never match.
	if got := NewAttrSelector("href").Select(html.NewPhantomText("x")); got != nil {
		t.Errorf("phantom matched attr selector: %v", got)
	}
}

func TestIDSelector(t *testing.T) {
	doc := parseDoc(t, `<body><div id="Main">x</div></body>`)
	divs := apply(NewPathSelector([]PathStep{{PathTravel, "div"}}), []html.Ref{doc.Root()})

	if got := apply(NewIDSelector("Main", true), divs); len(got) != 1 {
		t.Errorf("exact id: got %d, want 1", len(got))
	}
	// Case-sensitive comparison rejects a differently-cased id.
	if got := apply(NewIDSelector("main", true), divs); len(got) != 0 {
		t.Errorf("case-sensitive id: got %d, want 0", len(got))
	}
	if got := apply(NewIDSelector("main", false), divs); len(got) != 1 {
		t.Errorf("case-insensitive id: got %d, want 1", len(got))
	}
}

func TestClassSelector(t *testing.T) {
	doc := parseDoc(t, `<body><div class="  Active   big ">x</div></body>`)
	divs := apply(NewPathSelector([]PathStep{{PathTravel, "div"}}), []html.Ref{doc.Root()})

	if got := apply(NewClassSelector("big", true), divs); len(got) != 1 {
		t.Errorf("class token: got %d, want 1", len(got))
	}
	if got := apply(NewClassSelector("active", true), divs); len(got) != 0 {
		t.Errorf("case-sensitive class: got %d, want 0", len(got))
	}
	if got := apply(NewClassSelector("active", false), divs); len(got) != 1 {
		t.Errorf("case-insensitive class: got %d, want 1", len(got))
	}
	// A substring of a token is not a token.
	if got := apply(NewClassSelector("act", false), divs); len(got) != 0 {
		t.Errorf("partial class token: got %d, want 0", len(got))
	}
}

func TestNthChildSelector(t *testing.T) {
	doc := parseDoc(t, `<body><ul><li>a</li><li>b</li><li>c</li></ul></body>`)
	uls := apply(NewPathSelector([]PathStep{{PathTravel, "ul"}}), []html.Ref{doc.Root()})
	if len(uls) != 1 {
		t.Fatalf("got %d uls, want 1", len(uls))
	}

	cases := []struct {
		n        int
		reversed bool
		want     string
	}{
		{0, false, "a"},
		{2, false, "c"},
		{0, true, "c"},
		{1, true, "b"},
	}
	for _, tc := range cases {
		got := apply(NewNthChildSelector(tc.n, tc.reversed), uls)
		if len(got) != 1 {
			t.Fatalf("child(%d, %v): got %d nodes, want 1", tc.n, tc.reversed, len(got))
		}
		if text := got[0].(html.ElementRef).Text(); text != tc.want {
			t.Errorf("child(%d, %v): text %q, want %q", tc.n, tc.reversed, text, tc.want)
		}
	}

	// Out of range drops the element.
	if got := apply(NewNthChildSelector(3, false), uls); len(got) != 0 {
		t.Errorf("out-of-range child: got %d, want 0", len(got))
	}
	// Non-elements are dropped, not passed through.
	if got := NewNthChildSelector(0, false).Select(html.NewPhantomText("x")); got != nil {
		t.Errorf("phantom through nth-child: %v", got)
	}
}

func TestTextSelector(t *testing.T) {
	doc := parseDoc(t, `<body><div>one<span>two</span>three</div></body>`)
	divs := apply(NewPathSelector([]PathStep{{PathTravel, "div"}}), []html.Ref{doc.Root()})

	got := apply(NewTextSelector(), divs)
	if len(got) != 1 {
		t.Fatalf("got %d refs, want 1", len(got))
	}
	if _, ok := got[0].(html.PhantomTextRef); !ok {
		t.Fatalf("got %T, want PhantomTextRef", got[0])
	}
	if s := got[0].String(); s != "onetwothree" {
		t.Errorf("got %q, want %q", s, "onetwothree")
	}

	// Text and phantom references pass through unchanged.
	p := html.NewPhantomText("keep")
	if got := NewTextSelector().Select(p); len(got) != 1 || got[0].String() != "keep" {
		t.Errorf("phantom pass-through: %v", texts(got))
	}
}

func TestTrimSelectors(t *testing.T) {
	in := html.NewPhantomText("  $12 USD\n")

	trimmed := NewTrimSelector().Select(in)
	if got := trimmed[0].String(); got != "$12 USD" {
		t.Errorf("trim: got %q", got)
	}
	// Trimming an already-trimmed value is a no-op.
	again := NewTrimSelector().Select(trimmed[0])
	if got := again[0].String(); got != "$12 USD" {
		t.Errorf("trim twice: got %q", got)
	}

	if got := NewTrimPrefixSelector("$").Select(trimmed[0])[0].String(); got != "12 USD" {
		t.Errorf("trimPrefix: got %q", got)
	}
	if got := NewTrimSuffixSelector(" USD").Select(trimmed[0])[0].String(); got != "$12" {
		t.Errorf("trimSuffix: got %q", got)
	}
	// An absent prefix leaves the value unchanged.
	if got := NewTrimPrefixSelector("€").Select(trimmed[0])[0].String(); got != "$12 USD" {
		t.Errorf("absent prefix: got %q", got)
	}
}

func TestExtractAttrSelector(t *testing.T) {
	doc := parseDoc(t, `<body><a href="https://example.com">x</a><a>y</a></body>`)
	anchors := apply(NewPathSelector([]PathStep{{PathTravel, "a"}}), []html.Ref{doc.Root()})

	got := apply(NewExtractAttrSelector("href"), anchors)
	if len(got) != 1 {
		t.Fatalf("got %d refs, want 1", len(got))
	}
	if _, ok := got[0].(html.PhantomTextRef); !ok {
		t.Fatalf("got %T, want PhantomTextRef", got[0])
	}
	if s := got[0].String(); s != "https://example.com" {
		t.Errorf("got %q", s)
	}
}
