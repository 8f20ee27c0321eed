package script

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTranscript = `
                                    PHOENIX
                        Objection! That testimony is a lie.
                        Nothing about it adds up.
                            (slams the desk)
                                    EDGEWORTH
                        The defense has no evidence for that claim.
                                    PHOENIX
                        Then I will find some.
`

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trial.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCast() []Author {
	return []Author{
		{Name: "Phoenix", Character: "phoenix"},
		{Name: "Edgeworth", Character: "edgeworth"},
	}
}

func TestLoadScriptMergesTurns(t *testing.T) {
	path := writeTranscript(t, sampleTranscript)

	lines, err := LoadScript(path, testCast(), 0)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 turns, got %d: %+v", len(lines), lines)
	}

	if lines[0].Author.Character != "phoenix" {
		t.Errorf("turn 0 speaker: got %q", lines[0].Author.Character)
	}
	want := "Objection! That testimony is a lie. Nothing about it adds up."
	if lines[0].Text != want {
		t.Errorf("turn 0 text:\n got %q\nwant %q", lines[0].Text, want)
	}
	if lines[1].Author.Character != "edgeworth" {
		t.Errorf("turn 1 speaker: got %q", lines[1].Author.Character)
	}
	if lines[2].Author.Character != "phoenix" {
		t.Errorf("turn 2 speaker: got %q", lines[2].Author.Character)
	}
}

func TestLoadScriptMaxTurns(t *testing.T) {
	path := writeTranscript(t, sampleTranscript)

	lines, err := LoadScript(path, testCast(), 1)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected the cap to stop at 1 turn, got %d", len(lines))
	}
}

func TestLoadScriptUnknownSpeaker(t *testing.T) {
	path := writeTranscript(t, sampleTranscript)

	_, err := LoadScript(path, []Author{{Name: "Phoenix", Character: "phoenix"}}, 0)
	if err == nil {
		t.Fatal("expected an error for a speaker missing from the cast")
	}
}
