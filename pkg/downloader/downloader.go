package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout   = 120 * time.Second
	DefaultChunkSize = 64 * 1024
)

var (
	ErrTimeout  = errors.New("download timeout")
	ErrTooLarge = errors.New("download exceeds size limit")
)

// Downloader drains a live stream into memory.
type Downloader struct {
	// Timeout bounds the whole drain, measured from the Buffer call.
	Timeout time.Duration
	// MaxBytes caps the buffer; zero disables the cap.
	MaxBytes int64
	// ChunkSize is the read size per chunk.
	ChunkSize int
	// ProgressInterval throttles progress log lines; zero disables them.
	ProgressInterval time.Duration
}

type ProgressWriter struct {
	Total      int64
	Downloaded int64
	Chunks     int
	Started    time.Time
	LastPrint  time.Time
	Interval   time.Duration
	Label      string
}

func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.Downloaded += int64(n)
	pw.Chunks++

	if pw.Interval > 0 && time.Since(pw.LastPrint) > pw.Interval {
		pw.printProgress()
		pw.LastPrint = time.Now()
	}
	return n, nil
}

func (pw *ProgressWriter) printProgress() {
	mb := float64(pw.Downloaded) / 1024 / 1024
	ev := log.Debug().Str("op", "downloader/progress").Str("label", pw.Label).
		Int("chunks", pw.Chunks).Float64("mb", mb)
	if elapsed := time.Since(pw.Started).Seconds(); elapsed > 0 {
		ev = ev.Float64("mb_per_sec", mb/elapsed)
	}
	if pw.Total > 0 {
		ev = ev.Float64("percent", float64(pw.Downloaded)/float64(pw.Total)*100)
	}
	ev.Msg("Buffering stream")
}

type drainResult struct {
	data []byte
	err  error
}

// Buffer reads stream to completion and returns the concatenated chunks.
// Completion, stream error, Timeout and ctx cancellation race; the first one
// decides the outcome. The stream is closed exactly once on every path, which
// also unblocks a reader still waiting on it.
func (d *Downloader) Buffer(ctx context.Context, stream io.ReadCloser, size int64, label string) ([]byte, error) {
	var closeOnce sync.Once
	closeStream := func() {
		closeOnce.Do(func() {
			if cerr := stream.Close(); cerr != nil {
				log.Debug().Str("op", "downloader/buffer").Err(cerr).Msg("Error closing stream")
			}
		})
	}
	defer closeStream()

	if d.MaxBytes > 0 && size > d.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes announced", ErrTooLarge, size)
	}

	pw := &ProgressWriter{
		Total:     size,
		Started:   time.Now(),
		LastPrint: time.Now(),
		Interval:  d.ProgressInterval,
		Label:     label,
	}

	// The drain goroutine must be able to deliver after Buffer has returned.
	done := make(chan drainResult, 1)
	go func() {
		data, err := d.drain(stream, pw)
		done <- drainResult{data: data, err: err}
	}()

	timer := time.NewTimer(d.timeout())
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		log.Debug().Str("op", "downloader/buffer").Str("label", label).
			Int("bytes", len(r.data)).Int("chunks", pw.Chunks).Msg("Stream drained")
		return r.data, nil
	case <-timer.C:
		log.Warn().Str("op", "downloader/buffer").Str("label", label).Dur("timeout", d.timeout()).Msg("Stream timed out")
		return nil, ErrTimeout
	case <-ctx.Done():
		log.Debug().Str("op", "downloader/buffer").Str("label", label).Err(ctx.Err()).Msg("Stream cancelled")
		return nil, ctx.Err()
	}
}

func (d *Downloader) drain(stream io.Reader, pw *ProgressWriter) ([]byte, error) {
	var out bytes.Buffer
	chunk := make([]byte, d.chunkSize())
	for {
		n, err := stream.Read(chunk)
		if n > 0 {
			if d.MaxBytes > 0 && int64(out.Len()+n) > d.MaxBytes {
				return nil, ErrTooLarge
			}
			out.Write(chunk[:n])
			_, _ = pw.Write(chunk[:n])
		}
		if errors.Is(err, io.EOF) {
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("stream error: %w", err)
		}
	}
}

func (d *Downloader) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

func (d *Downloader) chunkSize() int {
	if d.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return d.ChunkSize
}
