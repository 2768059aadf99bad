package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  []Selector
	}{
		{"@flat()", []Selector{NewFlatSelector()}},
		{"#text()", []Selector{NewTextSelector()}},
		{"#trim()", []Selector{NewTrimSelector()}},
		{"@path(`/div`)", []Selector{NewPathSelector([]PathStep{{PathSingle, "div"}})}},
		{"@path(`//div`)", []Selector{NewPathSelector([]PathStep{{PathTravel, "div"}})}},
		{"@path(`/body//div/a`)", []Selector{NewPathSelector([]PathStep{
			{PathSingle, "body"},
			{PathTravel, "div"},
			{PathSingle, "a"},
		})}},
		{"@attr(`href`)", []Selector{NewAttrSelector("href")}},
		{"@attr(`target`, `_blank`)", []Selector{NewAttrValueSelector("target", "_blank")}},
		{"@id(`main`)", []Selector{NewIDSelector("main", true)}},
		{"@id(`main`, 1)", []Selector{NewIDSelector("main", true)}},
		{"@id(`main`, 0)", []Selector{NewIDSelector("main", false)}},
		{"@class(`active`)", []Selector{NewClassSelector("active", true)}},
		{"@class(`active`, 0)", []Selector{NewClassSelector("active", false)}},
		{"@child(0)", []Selector{NewNthChildSelector(0, false)}},
		{"@child(3)", []Selector{NewNthChildSelector(3, false)}},
		{"@child(-1)", []Selector{NewNthChildSelector(0, true)}},
		{"@child(-2)", []Selector{NewNthChildSelector(1, true)}},
		{"@child(-0)", []Selector{NewNthChildSelector(0, false)}},
		{"#trimPrefix(`$`)", []Selector{NewTrimPrefixSelector("$")}},
		{"#trimSuffix(` USD`)", []Selector{NewTrimSuffixSelector(" USD")}},
		{"#extractAttr(`href`)", []Selector{NewExtractAttrSelector("href")}},
		{
			"@flat() | @path(`/body//div/a`) | @attr(`href`) | #text() | #trim()",
			[]Selector{
				NewFlatSelector(),
				NewPathSelector([]PathStep{
					{PathSingle, "body"},
					{PathTravel, "div"},
					{PathSingle, "a"},
				}),
				NewAttrSelector("href"),
				NewTextSelector(),
				NewTrimSelector(),
			},
		},
		{
			"  @id( `main` , 0 )\n|\t#text()  ",
			[]Selector{NewIDSelector("main", false), NewTextSelector()},
		},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input  string
		line   int
		column int
	}{
		{"", 1, 1},                   // empty query
		{"flat()", 1, 1},             // missing sigil
		{"@bogus()", 1, 2},           // unknown @ keyword
		{"#bogus()", 1, 2},           // unknown # keyword
		{"@flat", 1, 6},              // missing argument list
		{"@flat(", 1, 7},             // unclosed argument list
		{"@flat() |", 1, 10},         // dangling pipe
		{"@flat() @flat()", 1, 9},    // missing pipe between exprs
		{"@attr()", 1, 7},            // missing required string
		{"@attr(`a`, 1)", 1, 12},     // number where string expected
		{"@id(`a`, 2)", 1, 10},       // flag outside 0/1
		{"@child(`2`)", 1, 8},        // string where number expected
		{"@child(-)", 1, 9},          // sign without digits
		{"@path(``)", 1, 7},          // empty path
		{"@path(`div`)", 1, 7},       // path missing leading slash
		{"@path(`/div/`)", 1, 7},     // trailing slash without tag
		{"@attr(`unterminated", 1, 20},
		{"\n  @bogus()", 2, 4},
	}

	for _, tc := range cases {
		_, err := Parse(tc.input)
		require.Error(t, err, "input %q", tc.input)

		var ge *GrammarError
		require.True(t, errors.As(err, &ge), "input %q: error %v is not a GrammarError", tc.input, err)
		assert.Equal(t, tc.line, ge.Line, "input %q", tc.input)
		assert.Equal(t, tc.column, ge.Column, "input %q", tc.input)
		assert.NotEmpty(t, ge.Expected, "input %q", tc.input)
		assert.NotEmpty(t, ge.Found, "input %q", tc.input)
	}
}

func TestGrammarErrorMessage(t *testing.T) {
	_, err := Parse("@bogus()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grammar error at 1:2")
	assert.Contains(t, err.Error(), "expected")
	assert.Contains(t, err.Error(), "found")
}

func TestMustParse(t *testing.T) {
	assert.Len(t, MustParse("@flat() | #text()"), 2)
	assert.Panics(t, func() { MustParse("@bogus()") })
}
