package video

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Encoder holds the ffmpeg settings shared by every segment of a run.
type Encoder struct {
	// Codec is the H.264 encoder name (libx264, h264_nvenc, h264_videotoolbox).
	Codec   string
	Quality int
	FPS     int
}

// Stream encodes one video segment from raw RGBA frames piped over stdin.
// The ffmpeg process starts lazily on the first frame, which fixes the
// segment dimensions; every later frame must match them.
type Stream struct {
	ctx  context.Context
	enc  *Encoder
	path string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	w, h   int
	frames int
}

// NewStream prepares a segment encoder writing to path. No process is
// spawned until the first frame arrives.
func (e *Encoder) NewStream(ctx context.Context, path string) *Stream {
	return &Stream{ctx: ctx, enc: e, path: path}
}

// WriteFrame pipes one frame into the encoder. The first frame decides the
// segment dimensions; a mismatching later frame aborts the stream.
func (s *Stream) WriteFrame(frame *image.RGBA) error {
	b := frame.Bounds()
	if s.cmd == nil {
		if err := s.start(b.Dx(), b.Dy()); err != nil {
			return err
		}
	}
	if b.Dx() != s.w || b.Dy() != s.h {
		return fmt.Errorf("frame size %dx%d does not match segment %dx%d",
			b.Dx(), b.Dy(), s.w, s.h)
	}

	pix := frame.Pix
	if frame.Stride != s.w*4 || b.Min.X != 0 || b.Min.Y != 0 {
		packed := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
		for y := 0; y < s.h; y++ {
			copy(packed.Pix[y*packed.Stride:(y+1)*packed.Stride],
				frame.Pix[frame.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		pix = packed.Pix
	}
	if _, err := s.stdin.Write(pix); err != nil {
		return fmt.Errorf("write frame to ffmpeg: %w", err)
	}
	s.frames++
	return nil
}

func (s *Stream) start(w, h int) error {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%d", s.enc.FPS),
		"-i", "-",
		"-r", fmt.Sprintf("%d", s.enc.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", s.enc.Codec,
	}
	switch s.enc.Codec {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", s.enc.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", s.enc.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", s.enc.Quality), "-preset", "medium")
	}
	args = append(args, s.path)

	cmd := exec.CommandContext(s.ctx, "ffmpeg", args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	s.cmd, s.stdin, s.w, s.h = cmd, stdin, w, h
	return nil
}

// FrameCount reports how many frames have been written so far.
func (s *Stream) FrameCount() int { return s.frames }

// Size reports the segment dimensions, zero before the first frame.
func (s *Stream) Size() (w, h int) { return s.w, s.h }

// Close flushes the pipe and waits for ffmpeg to finish the segment. The
// child is always reaped, even when closing the pipe fails.
func (s *Stream) Close() error {
	if s.cmd == nil {
		return fmt.Errorf("segment %s received no frames", s.path)
	}
	closeErr := s.stdin.Close()
	waitErr := s.cmd.Wait()
	if closeErr != nil {
		return closeErr
	}
	if waitErr != nil {
		return fmt.Errorf("ffmpeg wait error: %w", waitErr)
	}
	return nil
}

// Concatenate joins already-encoded segments into one file with the concat
// demuxer. Segments share codec settings, so the streams are copied as is.
func Concatenate(ctx context.Context, segmentPaths []string, finalPath, tmpDir string) error {
	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(concatFilePath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, _ := filepath.Abs(p)
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	if err := f.Close(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0", "-i", concatFilePath,
		"-c", "copy", finalPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
	}
	return nil
}

// Mux pairs the silent video with the assembled soundtrack. The video stream
// is copied; the audio is encoded with the requested codec.
func Mux(ctx context.Context, videoPath, audioPath, finalPath, audioCodec string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", audioCodec,
		"-shortest",
		finalPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %v, output: %s", err, string(out))
	}
	return nil
}
