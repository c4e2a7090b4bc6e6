// Package hostio adapts the audio-generation core to a real-time output
// device, standing in for the VST/CLAP host shim spec.md §1 puts out of
// scope (SPEC_FULL.md §5): it exists only so the core can be heard and
// demoed, via the same ebiten/v2/audio + oto/v3 playback path the teacher
// used for its own MML playback (internal/audio/stream.go), adapted from a
// single mono SampleSource to OctaSine's interleaved stereo output.
package hostio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource produces interleaved stereo float32 samples on demand; the
// root Synth implements this directly.
type SampleSource interface {
	Process(dst []float32)
}

type streamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func newStreamReader(source SampleSource) *streamReader {
	return &streamReader{source: source}
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8 // 2 channels * 4 bytes/float32
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	return frames * 8, nil
}

func (r *streamReader) Close() error { return nil }

// Device is an open real-time output stream driven by a SampleSource.
type Device struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	contextOnce      sync.Once
	context          *ebitaudio.Context
	contextSampleHz  int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextSampleHz = sampleRate
		context = ebitaudio.NewContext(sampleRate)
	})
	if contextSampleHz != sampleRate {
		return nil, fmt.Errorf("hostio: audio context already initialized at %d Hz (requested %d Hz)", contextSampleHz, sampleRate)
	}
	return context, nil
}

// Open starts a real-time stereo output stream at sampleRate, pulling
// samples from src as the device needs them.
func Open(sampleRate int, src SampleSource) (*Device, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := newStreamReader(src)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("hostio: open player: %w", err)
	}
	return &Device{player: pl, reader: reader}, nil
}

// Play starts (or resumes) output.
func (d *Device) Play() { d.player.Play() }

// Pause stops output without releasing the device.
func (d *Device) Pause() { d.player.Pause() }

// IsPlaying reports whether the device is currently producing sound.
func (d *Device) IsPlaying() bool { return d.player.IsPlaying() }

// Position returns how much audio has actually been heard so far.
func (d *Device) Position() time.Duration { return d.player.Position() }

// Close stops playback and releases the device.
func (d *Device) Close() error {
	d.player.Pause()
	if err := d.player.Close(); err != nil {
		return err
	}
	return d.reader.Close()
}
