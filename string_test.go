// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream_test

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	jsonstream "github.com/blixt/ainotes"
)

func TestReadString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`""`, ""},
		{`"a b c"`, "a b c"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{`"A"`, "A"},
		// Scenario 1.
		{`"Hello,\nWorld!\t\"Escaped\"A"`, "Hello,\nWorld!\t\"Escaped\"A"},
		// Adjacent surrogate halves join into a single code point.
		{"\"\\uD834\\uDD1E\"", "\U0001D11E"},
		// An unpaired surrogate decodes to the replacement character.
		{`"\uD834x"`, "�x"},
	}
	for _, test := range tests {
		p := jsonstream.NewParser(jsonstream.SliceSource(test.input))
		got, err := p.ReadString()
		if err != nil {
			t.Errorf("ReadString(%q): unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ReadString(%q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestReadString_chunkPartitionIndependence(t *testing.T) {
	const want = "Hello,\nWorld!\t\"Escaped\"A"
	doc := `"Hello,\nWorld!\t\"Escaped\"A"`

	for n := 1; n <= len(doc); n++ {
		p := jsonstream.NewParser(jsonstream.SliceSource(splitEvery(doc, n)...))
		got, err := p.ReadString()
		if err != nil {
			t.Errorf("n=%d: unexpected error: %v", n, err)
			continue
		}
		if got != want {
			t.Errorf("n=%d: got %q, want %q", n, got, want)
		}
	}
}

// An escape split across chunk boundaries decodes identically to the
// unsplit form.
func TestReadString_splitEscape(t *testing.T) {
	p := jsonstream.NewParser(jsonstream.SliceSource(`"`, `\u00`, `A9`, `"`))
	got, err := p.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "©" {
		t.Errorf("ReadString: got %q, want %q", got, "©")
	}
}

// A surrogate pair split across two separate \u escapes, each itself split
// across a chunk boundary, still recombines into one code point.
func TestReadString_splitSurrogatePair(t *testing.T) {
	p := jsonstream.NewParser(jsonstream.SliceSource(`"`, `\uD8`, `34\uDD`, `1E"`))
	got, err := p.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "\U0001D11E" {
		t.Errorf("ReadString: got %q, want %q", got, "\U0001D11E")
	}
}

func TestReadStringChunks_concatenationMatchesReadString(t *testing.T) {
	long := `"` + stringsRepeat("abcdefgh\\n", 500) + `"`

	p1 := jsonstream.NewParser(jsonstream.SliceSource(long))
	want, err := p1.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}

	p2 := jsonstream.NewParser(jsonstream.SliceSource(splitEvery(long, 7)...))
	sc := p2.ReadStringChunks()
	var got []byte
	for {
		chunk, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, chunk...)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("chunked vs whole: (-want, +got)\n%s", diff)
	}
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
