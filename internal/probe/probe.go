// Package probe reads the playing time of a local recording. A duration that
// cannot be determined is reported as nil, never as an error.
package probe

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/logger"
)

type Prober struct {
	// FFProbe is the ffprobe binary; empty disables the fallback.
	FFProbe string
}

// Duration returns the recording length in seconds, or nil when unknown.
func (p Prober) Duration(ctx context.Context, path string) *float64 {
	if format.Extension(path) == "wav" {
		d, err := wavDuration(path)
		if err == nil {
			return &d
		}
		logger.Debugf(ctx, "wav header probe failed for %s: %v", path, err)
	}
	if p.FFProbe == "" {
		return nil
	}
	d, err := ffprobeDuration(ctx, p.FFProbe, path)
	if err != nil {
		logger.Debugf(ctx, "ffprobe failed for %s: %v", path, err)
		return nil
	}
	return &d
}

func wavDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ParseWAV(f)
}

// ParseWAV walks the RIFF chunks up to "data" and divides its size by the byte rate.
func ParseWAV(r io.Reader) (float64, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return 0, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, errors.New("not a RIFF/WAVE file")
	}

	var byteRate uint32
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return 0, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return 0, errors.New("fmt chunk too short")
			}
			// only the 16-byte PCM header is kept; size is untrusted
			var fmtChunk [16]byte
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if _, err := io.CopyN(io.Discard, r, int64(size)-16+int64(size%2)); err != nil {
				return 0, fmt.Errorf("skip fmt chunk: %w", err)
			}
		case "data":
			if byteRate == 0 {
				return 0, errors.New("data chunk before a usable fmt chunk")
			}
			return float64(size) / float64(byteRate), nil
		default:
			// chunks are padded to an even size
			if _, err := io.CopyN(io.Discard, r, int64(size)+int64(size%2)); err != nil {
				return 0, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func ffprobeDuration(ctx context.Context, bin, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, bin, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe inspect: %w", err)
	}
	var out ffprobeOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("ffprobe duration %q is not usable", out.Format.Duration)
	}
	return d, nil
}
