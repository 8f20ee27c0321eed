package script

import (
	"strings"
	"testing"
)

func TestWrapRespectsWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps on running"
	lines := Wrap(text, 20)

	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
	for i, line := range lines {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line %d is %d runes, over the limit: %q", i, n, line)
		}
	}

	// Re-joining with spaces must give back the normalized input.
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("rejoin mismatch:\n got %q\nwant %q", got, text)
	}
}

func TestWrapHardSplitsOverlongWords(t *testing.T) {
	lines := Wrap("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(lines), lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestChunksPacksShortSentences(t *testing.T) {
	seg := &Segmenter{Splitter: PunctSplitter{}, WrapLimit: 40}
	chunks := seg.Chunks("Hello there. How are you? Fine.")

	if len(chunks) != 1 {
		t.Fatalf("expected one packed chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "Hello there. How are you? Fine." {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunksSplitsOversizedSentence(t *testing.T) {
	seg := &Segmenter{Splitter: PunctSplitter{}, WrapLimit: 20}
	chunks := seg.Chunks("this single sentence is far too long to fit in one chunk at all.")

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		last := chunk[len(chunk)-1]
		if !strings.ContainsRune(asciiPunctuation, rune(last)) {
			t.Errorf("chunk %d should end in punctuation or the continuation marker: %q", i, chunk)
		}
	}
	if last := chunks[len(chunks)-1]; last != "all." {
		t.Errorf("final chunk should keep its own ending, got %q", last)
	}
	for i, chunk := range chunks {
		body := strings.TrimSuffix(chunk, "...")
		if n := len([]rune(body)); n > 20 {
			t.Errorf("chunk %d body is %d runes, over the limit: %q", i, n, chunk)
		}
	}
}

func TestSplitIntoDisplayLines(t *testing.T) {
	got := SplitIntoDisplayLines("one two three four", 9)
	want := "one two \nthree \nfour "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPunctSplitter(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"No terminal punctuation", []string{"No terminal punctuation"}},
		{"Version 2.0 is out. Really.", []string{"Version 2.0 is out.", "Really."}},
	}
	for _, tt := range tests {
		got := PunctSplitter{}.Split(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Split(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Split(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
