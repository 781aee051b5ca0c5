// Command txtsynth compiles a textual melody into interleaved stereo PCM:
// parse score -> schedule notes onto a synthesizer -> mix -> gain -> sink.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"txtsynth/internal/config"
	"txtsynth/internal/graph"
	"txtsynth/internal/instrument"
	"txtsynth/internal/music"
	"txtsynth/internal/playback"
	"txtsynth/internal/rational"
	"txtsynth/internal/score"
	"txtsynth/internal/source"
	"txtsynth/internal/transducer"
)

type flags struct {
	verbose    int
	output     string
	play       bool
	sampleRate int
	blockSize  int
	gainDB     float64
	bpm        int64
	configPath string
	dumpScore  bool
}

func parseFlags() (flags, []string) {
	var f flags
	pflag.CountVarP(&f.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	pflag.StringVarP(&f.output, "output", "o", "", "write PCM to this file instead of stdout")
	pflag.BoolVar(&f.play, "play", false, "stream PCM to the default audio device instead of a byte sink")
	pflag.IntVar(&f.sampleRate, "sample-rate", 0, "samples per second (default 44100)")
	pflag.IntVar(&f.blockSize, "block-size", 0, "samples rendered per block (default 441)")
	pflag.Float64Var(&f.gainDB, "gain-db", 0, "output stage gain in decibels")
	pflag.Int64Var(&f.bpm, "bpm", 120, "tempo in beats per minute")
	pflag.StringVar(&f.configPath, "config", "", "optional YAML file providing any of the above as defaults")
	pflag.BoolVar(&f.dumpScore, "dump-score", false, "dump the resolved note list as YAML before rendering")
	pflag.Parse()
	return f, pflag.Args()
}

func run() error {
	f, args := parseFlags()
	if len(args) != 1 {
		return fmt.Errorf("usage: txtsynth [flags] <score-file>")
	}

	switch {
	case f.verbose >= 2:
		log.SetLevel(log.DebugLevel)
	case f.verbose == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	cfg := &config.Config{}
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.Defaults()
	}
	if f.sampleRate > 0 {
		cfg.SampleRate = f.sampleRate
	}
	if f.blockSize > 0 {
		cfg.BlockSize = f.blockSize
	}
	if pflag.CommandLine.Changed("gain-db") {
		cfg.GainDB = f.gainDB
	}
	if pflag.CommandLine.Changed("play") {
		cfg.Play = f.play
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read score: %w", err)
	}

	notes, err := score.Parse(string(text))
	if err != nil {
		return fmt.Errorf("parse score: %w", err)
	}
	log.Info("parsed score", "notes", len(notes))

	if f.dumpScore {
		dump, err := yaml.Marshal(notes)
		if err != nil {
			return fmt.Errorf("dump score: %w", err)
		}
		if _, err := os.Stdout.Write(dump); err != nil {
			return fmt.Errorf("dump score: %w", err)
		}
	}

	bpm := f.bpm
	if !pflag.CommandLine.Changed("bpm") && cfg.BPM > 0 {
		bpm = cfg.BPM
	}
	sig := music.TimeSig{BeatsPerMinute: bpm, BeatUnit: 4}

	if cfg.Play {
		sink, err := playback.Open(float64(cfg.SampleRate), cfg.BlockSize)
		if err != nil {
			return fmt.Errorf("open playback device: %w", err)
		}
		defer sink.Close()
		return renderTo(notes, sig, *cfg, sink)
	}

	out := io.Writer(os.Stdout)
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		out = file
	}
	return renderTo(notes, sig, *cfg, transducer.NewPCMSink(out))
}

// renderTo builds the render graph for a single melody and steps it to
// completion, with sink as the graph's terminal node (zero outputs).
func renderTo(notes []music.PlayedNote, sig music.TimeSig, cfg config.Config, sink graph.Node) error {
	sampleRate := int64(cfg.SampleRate)

	wavinator := instrument.NewWavinator(float64(sampleRate), instrument.DefaultWavinatorParams())
	inst := source.New(sampleRate, sig, wavinator, notes)

	builder := graph.NewBuilder()
	instNode := builder.AddNode(inst).Build()
	mixer := builder.AddNode(transducer.NewSum(1)).InputFrom(0, instNode.Output(0)).Build()
	gainNode := builder.AddNode(transducer.GainFromDecibels(cfg.GainDB)).InputFrom(0, mixer.Output(0)).Build()
	builder.AddNode(sink).InputFrom(0, gainNode.Output(0))

	g, err := builder.Build(cfg.BlockSize)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	lastNoteEnd := rational.Int(0)
	for _, n := range notes {
		end := n.Start.Add(n.Duration)
		if lastNoteEnd.Less(end) {
			lastNoteEnd = end
		}
	}
	maxSamples := sig.Samples(lastNoteEnd, sampleRate) + 2*sampleRate + int64(cfg.BlockSize) - 1
	steps := maxSamples / int64(cfg.BlockSize)

	log.Info("rendering", "bpm", sig.BeatsPerMinute, "sample_rate", sampleRate, "total_samples", maxSamples)
	for i := int64(0); i < steps; i++ {
		g.Step()
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
