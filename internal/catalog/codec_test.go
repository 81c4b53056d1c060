package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpaths/internal/model"
)

const testHome = "/home/ann"

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, Comma, DetectDelimiter(""))
	assert.Equal(t, Comma, DetectDelimiter("a,b,c\n"))
	assert.Equal(t, Tab, DetectDelimiter("a\tb\tc\n"))
	// One tab anywhere switches the whole file.
	assert.Equal(t, Tab, DetectDelimiter("a,b,c\nd\te,f,g\n"))
}

func TestDecodeCommaExample(t *testing.T) {
	got, err := Decode("a,First,~/x\nb,Second,/tmp/y\n", testHome)
	require.NoError(t, err)

	want := []model.PathEntry{
		{Slug: "a", Description: "First", RawPath: "~/x", ExpandedPath: "/home/ann/x"},
		{Slug: "b", Description: "Second", RawPath: "/tmp/y", ExpandedPath: "/tmp/y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTabExample(t *testing.T) {
	text := "a\tFirst\t~/x\n"
	require.Equal(t, Tab, DetectDelimiter(text))

	got, err := Decode(text, testHome)
	require.NoError(t, err)
	want := []model.PathEntry{
		{Slug: "a", Description: "First", RawPath: "~/x", ExpandedPath: "/home/ann/x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		slugs []string
		paths []string
	}{
		{
			name: "empty text",
			text: "",
		},
		{
			name:  "short row dropped",
			text:  "a,OnlyDesc\nb,Second,/tmp/y\n",
			slugs: []string{"b"},
			paths: []string{"/tmp/y"},
		},
		{
			name:  "blank and whitespace rows skipped",
			text:  "\n   \n,,\na,First,/x\n\n",
			slugs: []string{"a"},
			paths: []string{"/x"},
		},
		{
			name:  "fields trimmed",
			text:  "  a ,  First  ,  ~/x  \n",
			slugs: []string{"a"},
			paths: []string{"~/x"},
		},
		{
			name:  "extra columns joined into path",
			text:  "a,First,/data/one,two\n",
			slugs: []string{"a"},
			paths: []string{"/data/one,two"},
		},
		{
			name:  "extra tab columns joined with tab",
			text:  "a\tFirst\t/data/one\ttwo\n",
			slugs: []string{"a"},
			paths: []string{"/data/one\ttwo"},
		},
		{
			name:  "quoted delimiter does not split",
			text:  "a,\"First, really\",\"/data/one,two\"\n",
			slugs: []string{"a"},
			paths: []string{"/data/one,two"},
		},
		{
			name:  "quoted newline stays in field",
			text:  "a,\"line1\nline2\",/x\nb,Second,/y\n",
			slugs: []string{"a", "b"},
			paths: []string{"/x", "/y"},
		},
		{
			name:  "ragged rows tolerated",
			text:  "a,First,/x\nb\nc,Third,/z,extra,more\n",
			slugs: []string{"a", "c"},
			paths: []string{"/x", "/z,extra,more"},
		},
		{
			name:  "crlf line endings",
			text:  "a,First,/x\r\nb,Second,/y\r\n",
			slugs: []string{"a", "b"},
			paths: []string{"/x", "/y"},
		},
		{
			name:  "blanks around quoted field",
			text:  "docs, \"My docs, work\", ~/Documents\n",
			slugs: []string{"docs"},
			paths: []string{"~/Documents"},
		},
		{
			name:  "blank after closing quote keeps later rows",
			text:  "a,\"x, y\" ,/p\nb,B,/q\n",
			slugs: []string{"a", "b"},
			paths: []string{"/p", "/q"},
		},
		{
			name:  "bare quotes inside unquoted field",
			text:  "a,Say \"hi\" there,/p\n",
			slugs: []string{"a"},
			paths: []string{"/p"},
		},
		{
			name:  "blanks around quoted tab field",
			text:  "a\t \"x\ty\" \t/p\n",
			slugs: []string{"a"},
			paths: []string{"/p"},
		},
		{
			name:  "empty path column accepted",
			text:  "a,First,\n",
			slugs: []string{"a"},
			paths: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.text, testHome)
			require.NoError(t, err)
			require.NotNil(t, got)
			var slugs, paths []string
			for _, e := range got {
				slugs = append(slugs, e.Slug)
				paths = append(paths, e.RawPath)
			}
			assert.Equal(t, tt.slugs, slugs)
			assert.Equal(t, tt.paths, paths)
		})
	}
}

func TestDecodeQuotedFieldsNextToBlanks(t *testing.T) {
	got, err := Decode("docs, \"My docs, work\", ~/Documents\na,\"x, y\" ,/p\nq, \"Say \"\"hi\"\"\"x ,/q\n", testHome)
	require.NoError(t, err)

	want := []model.PathEntry{
		{Slug: "docs", Description: "My docs, work", RawPath: "~/Documents", ExpandedPath: "/home/ann/Documents"},
		{Slug: "a", Description: "x, y", RawPath: "/p", ExpandedPath: "/p"},
		{Slug: "q", Description: `Say "hi"x`, RawPath: "/q", ExpandedPath: "/q"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnterminatedQuote(t *testing.T) {
	got, err := Decode("a,A,/a\nb,\"open, /b\nc,C,/c\n", testHome)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
	assert.ErrorContains(t, err, "line 2")
	assert.Nil(t, got)
}

func TestDecodeExpandsOnlyLeadingTilde(t *testing.T) {
	got, err := Decode("a,First,/srv/~/x\nb,Second,~\n", testHome)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/srv/~/x", got[0].ExpandedPath)
	assert.Equal(t, testHome, got[1].ExpandedPath)
}

func TestEncode(t *testing.T) {
	entries := []model.PathEntry{
		{Slug: "docs", Description: "Documents", RawPath: "~/Documents", ExpandedPath: "/home/ann/Documents"},
		{Slug: "odd", Description: `Say "hi", ok`, RawPath: "/data/a,b"},
	}

	got, err := Encode(entries, Comma)
	require.NoError(t, err)
	assert.Equal(t, "docs,Documents,~/Documents\nodd,\"Say \"\"hi\"\", ok\",\"/data/a,b\"\n", got)

	got, err = Encode(entries[:1], Tab)
	require.NoError(t, err)
	assert.Equal(t, "docs\tDocuments\t~/Documents\n", got)
}

func TestEncodeEmpty(t *testing.T) {
	got, err := Encode(nil, Comma)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRoundTripStability(t *testing.T) {
	inputs := []string{
		"a,First,~/x\nb,Second,/tmp/y\n",
		"a\tFirst\t~/x\nb\t\"Tab\tdesc\"\t/tmp/y\n",
		"q,\"Quote \"\"me\"\"\",\"/a,b\"\nn,\"multi\nline\",/z\n",
	}

	for _, text := range inputs {
		delim := DetectDelimiter(text)
		first, err := Decode(text, testHome)
		require.NoError(t, err)

		encoded, err := Encode(first, delim)
		require.NoError(t, err)
		require.Equal(t, delim, DetectDelimiter(encoded))

		second, err := Decode(encoded, testHome)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip of %q changed entries (-first +second):\n%s", text, diff)
		}

		again, err := Encode(second, delim)
		require.NoError(t, err)
		assert.Equal(t, encoded, again, "encoding is not stable")
	}
}
