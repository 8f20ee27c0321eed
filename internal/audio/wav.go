package audio

import (
	"bufio"
	"encoding/binary"
	"os"
)

// WriteWAV writes the segment as a 16-bit mono PCM WAV file, the
// intermediate handed to the muxer.
func WriteWAV(path string, s *Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dataSize := uint32(len(s.samples) * 2)

	// RIFF header
	w.WriteString("RIFF")
	binary.Write(w, binary.LittleEndian, uint32(36+dataSize))
	w.WriteString("WAVE")

	// fmt chunk: PCM, mono, 16-bit
	w.WriteString("fmt ")
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(1))
	binary.Write(w, binary.LittleEndian, uint16(1))
	binary.Write(w, binary.LittleEndian, uint32(SampleRate))
	binary.Write(w, binary.LittleEndian, uint32(SampleRate*2))
	binary.Write(w, binary.LittleEndian, uint16(2))
	binary.Write(w, binary.LittleEndian, uint16(16))

	// data chunk
	w.WriteString("data")
	binary.Write(w, binary.LittleEndian, dataSize)
	pcm := make([]byte, dataSize)
	for i, v := range s.samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}
	w.Write(pcm)

	return w.Flush()
}
