// Command octasine-render is a minimal standalone demo harness for the
// audio-generation core: it loads (or creates) a patch bank, plays a MIDI
// note on a Synth, and streams the result to a real-time output device.
// It exists only so the core can be heard outside of a host plug-in, which
// is explicitly out of scope for the module itself.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/cbegin/octasine-go"
	"github.com/cbegin/octasine-go/internal/hostio"
	"github.com/cbegin/octasine-go/internal/patch"
)

func main() {
	var (
		sampleRate = pflag.IntP("sample-rate", "r", 44100, "output sample rate")
		pitch      = pflag.IntP("pitch", "p", 60, "MIDI note number to sound")
		velocity   = pflag.IntP("velocity", "v", 100, "MIDI velocity (1-127)")
		duration   = pflag.DurationP("duration", "d", 2*time.Second, "how long to hold the note before releasing")
		tail       = pflag.Duration("tail", 1500*time.Millisecond, "how long to let the release ring out before stopping")
		bankPath   = pflag.StringP("bank", "b", "", "patch bank YAML file to load (a fresh in-memory one-patch bank is used if it can't be loaded)")
		patchIndex = pflag.IntP("patch", "i", 0, "index into the bank to play")
		bpm        = pflag.Float64("bpm", octasine.DefaultBPM, "host tempo, for BPM-synced LFOs")
		help       = pflag.BoolP("help", "h", false, "show usage")
	)
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "octasine-render plays a single note through the synthesis core and exits.")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	bank, err := loadOrCreateBank(*bankPath)
	if err != nil {
		log.Fatal(err)
	}
	if *patchIndex < 0 || *patchIndex >= len(bank.Patches) {
		log.Fatalf("patch index %d out of range (bank has %d patches)", *patchIndex, len(bank.Patches))
	}
	bank.Current = *patchIndex

	synth := octasine.NewSynth(float64(*sampleRate))
	synth.SetBPM(*bpm)
	applyPatch(synth, bank.CurrentPatch())

	device, err := hostio.Open(*sampleRate, synth)
	if err != nil {
		log.Fatal(err)
	}
	defer device.Close()

	synth.NoteOn(uint8(*pitch), uint8(*velocity))
	device.Play()

	time.Sleep(*duration)
	synth.NoteOff(uint8(*pitch))
	time.Sleep(*tail)
}

func loadOrCreateBank(path string) (*patch.Bank, error) {
	if path == "" {
		return patch.NewBank(1), nil
	}
	bank, err := patch.Load(path)
	if err != nil {
		bank = patch.NewBank(1)
	}
	return bank, nil
}

// applyPatch pushes every stored parameter value from p into synth; a
// patch that has never set a given index leaves synth's existing default
// in place (patch.Get's fallback handles that).
func applyPatch(synth *octasine.Synth, p *patch.Patch) {
	for i := 0; i < synth.ParameterCount(); i++ {
		synth.SetParameterNormalized(i, p.Get(i, synth.ParameterNormalized(i)))
	}
}
