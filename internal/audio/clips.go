package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
)

// DecodeClip decodes any audio file ffmpeg understands into a mono PCM
// segment at the working sample rate. Codec handling stays outside the
// pipeline; a missing or unreadable file aborts the render.
func DecodeClip(path string) (*Segment, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sound asset %s: %w", path, err)
	}

	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode %s: %v, output: %s", path, err, stderr.String())
	}

	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[2*i:]))
	}
	return &Segment{samples: samples}, nil
}
