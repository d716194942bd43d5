package feedback

import (
	"slices"
	"strings"
	"testing"
)

func segmentAll(fragments []string) []string {
	var s Segmenter
	var out []string
	for _, f := range fragments {
		out = append(out, s.Push(f)...)
	}
	return append(out, s.Flush()...)
}

func TestSegmenter_WordBoundaries(t *testing.T) {
	got := segmentAll([]string{"The ", "correct", " answer is B."})
	want := []string{"The", " ", "correct", " ", "answer", " ", "is", " ", "B.", DoneMarker}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestSegmenter_PunctuationWithoutSpace(t *testing.T) {
	var s Segmenter
	if out := s.Push("Great"); len(out) != 0 {
		t.Fatalf("expected nothing buffered out, got %q", out)
	}
	out := s.Push("!")
	if !slices.Equal(out, []string{"Great!"}) {
		t.Fatalf("got %q", out)
	}
	if rest := s.Flush(); !slices.Equal(rest, []string{DoneMarker}) {
		t.Fatalf("buffer should be empty, got %q", rest)
	}
}

func TestSegmenter_FlushDropsBlankRemainder(t *testing.T) {
	got := segmentAll([]string{"Hi ", "\n"})
	want := []string{"Hi", " ", DoneMarker}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegmenter_EmptyStream(t *testing.T) {
	got := segmentAll(nil)
	if !slices.Equal(got, []string{DoneMarker}) {
		t.Fatalf("got %q", got)
	}
}

func TestSegmenter_Reconstructs(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
	}{
		{"single fragment", []string{"Almost! Paris is the capital of France."}},
		{"char by char", strings.Split("Good try, but remember: B is right.", "")},
		{"double spaces", []string{"One  two", "   three."}},
		{"leading space", []string{" Nice", " effort;", " keep going"}},
		{"split words", []string{"Photo", "synth", "esis uses light", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := segmentAll(tt.fragments)
			if chunks[len(chunks)-1] != DoneMarker {
				t.Fatalf("missing done marker: %q", chunks)
			}
			got := strings.Join(chunks[:len(chunks)-1], "")
			want := strings.Join(tt.fragments, "")
			if got != want {
				t.Fatalf("reconstructed %q, want %q", got, want)
			}
			for _, c := range chunks {
				if c == "" {
					t.Fatalf("empty chunk in %q", chunks)
				}
				if c != " " && strings.Contains(c, " ") {
					t.Fatalf("chunk %q spans a word boundary", c)
				}
			}
		})
	}
}
