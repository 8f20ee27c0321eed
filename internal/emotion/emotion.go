package emotion

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// Label is a classified emotional tone. Normal is not produced by models;
// it is the normalized form of "no usable classification".
type Label string

const (
	Normal   Label = "normal"
	Sadness  Label = "sadness"
	Joy      Label = "joy"
	Love     Label = "love"
	Anger    Label = "anger"
	Fear     Label = "fear"
	Surprise Label = "surprise"
)

// Labels lists every label a theme must cover, including normal.
var Labels = []Label{Normal, Sadness, Joy, Love, Anger, Fear, Surprise}

// ParseLabel maps a model output to a known label. Unknown strings come back
// as Normal with ok=false so callers can log the miss.
func ParseLabel(s string) (Label, bool) {
	switch Label(strings.ToLower(strings.TrimSpace(s))) {
	case Sadness:
		return Sadness, true
	case Joy:
		return Joy, true
	case Love:
		return Love, true
	case Anger:
		return Anger, true
	case Fear:
		return Fear, true
	case Surprise:
		return Surprise, true
	case Normal:
		return Normal, true
	}
	return Normal, false
}

// Result is one classification: a label and the model's confidence in [0,1].
type Result struct {
	Label Label
	Score float64
}

// Normalize applies the confidence gate: a missing label or a score at or
// below threshold renders the line as Normal.
func (r Result) Normalize(threshold float64) Label {
	if r.Label == "" || r.Score <= threshold {
		return Normal
	}
	return r.Label
}

// Classifier is the emotion-model boundary. Implementations classify a batch
// of texts and return one result per text, in order.
type Classifier interface {
	Classify(texts []string) ([]Result, error)
}

// Fixed returns the same result for every text. Used in tests and for
// offline runs without a model.
type Fixed struct {
	Result Result
}

func (f Fixed) Classify(texts []string) ([]Result, error) {
	results := make([]Result, len(texts))
	for i := range results {
		results[i] = f.Result
	}
	return results, nil
}

// Command shells out to an external model process: one text per stdin line
// (newlines flattened), one "label<TAB>score" line per text on stdout.
type Command struct {
	Path string
	Args []string
}

func (c Command) Classify(texts []string) ([]Result, error) {
	var input bytes.Buffer
	for _, text := range texts {
		input.WriteString(strings.ReplaceAll(text, "\n", " "))
		input.WriteByte('\n')
	}

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Stdin = &input
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("classifier %s: %v, stderr: %s", c.Path, err, stderr.String())
	}

	var results []Result
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		label, score, err := parseResultLine(line)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Label: label, Score: score})
	}

	if len(results) != len(texts) {
		return nil, fmt.Errorf("classifier returned %d results for %d texts", len(results), len(texts))
	}
	return results, nil
}

func parseResultLine(line string) (Label, float64, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("malformed classifier line %q", line)
	}
	label, ok := ParseLabel(fields[0])
	if !ok {
		log.Printf("[!] Unknown emotion label %q, treating as normal", strings.TrimSpace(fields[0]))
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed classifier score %q: %v", fields[1], err)
	}
	if score < 0 || score > 1 {
		return "", 0, fmt.Errorf("classifier score %f out of range", score)
	}
	return label, score, nil
}
