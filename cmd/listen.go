package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"

	"github.com/jsphweid/notelane/capture"
	"github.com/jsphweid/notelane/constants"
	"github.com/jsphweid/notelane/detect"
	"github.com/jsphweid/notelane/lane"
	"github.com/jsphweid/notelane/pipeline"
	"github.com/jsphweid/notelane/record"
)

var (
	flagThreshold   int
	flagMinDuration float64
	flagMaxNotes    int
	flagFreqScale   float64
	flagMaxRecordMs float64
	flagMaxPoly     int

	listenRecord bool
	listenOut    string
	listenPlay   bool
)

func init() {
	listenCmd.Flags().IntVar(&flagThreshold, "threshold", constants.PeakThreshold, "peak amplitude threshold (0-255)")
	listenCmd.Flags().Float64Var(&flagMinDuration, "min-duration", constants.MinNoteDurationMs, "ms a note must persist before it counts")
	listenCmd.Flags().IntVar(&flagMaxNotes, "max-notes", constants.MaxNotesShown, "display lanes / peaks considered per frame")
	listenCmd.Flags().Float64Var(&flagFreqScale, "freq-scale", constants.MaxFrequencyScale, "fraction of the spectrum scanned")
	listenCmd.Flags().Float64Var(&flagMaxRecordMs, "max-record", constants.MaxRecordingMs, "recording ceiling in ms")
	listenCmd.Flags().IntVar(&flagMaxPoly, "max-poly", constants.MaxRecordedNotes, "max simultaneously recorded notes")
	listenCmd.Flags().BoolVar(&listenRecord, "record", false, "record the session")
	listenCmd.Flags().StringVar(&listenOut, "out", "", "write the recording to this .mid file on exit")
	listenCmd.Flags().BoolVar(&listenPlay, "play", false, "replay the recording on exit")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Detect notes from the microphone",
	Long:  `Detects notes from the default input device and shows them in display lanes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listen()
	},
}

func newPipeline() *pipeline.Pipeline {
	d := detect.New(detect.Config{
		FFTSize:       constants.FFTSize,
		Threshold:     byte(flagThreshold),
		MaxNotes:      flagMaxNotes,
		MaxFreqScale:  flagFreqScale,
		MinDurationMs: flagMinDuration,
	})
	l := lane.New(flagMaxNotes)
	r := record.New(record.Config{
		MaxDurationMs: flagMaxRecordMs,
		MaxNotes:      flagMaxPoly,
	})
	return pipeline.New(d, l, r, constants.HistoryDepth)
}

func listen() error {
	src, err := capture.NewSource(constants.FFTSize, constants.SampleRate)
	if err != nil {
		return fmt.Errorf("could not acquire audio source: %w", err)
	}
	defer src.Close()

	p := newPipeline()
	if listenRecord {
		p.Recorder.Start(0)
	}

	if err := src.Start(); err != nil {
		return fmt.Errorf("could not start audio source: %w", err)
	}
	fmt.Println("Listening... Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	redraw := debounce.New(50 * time.Millisecond)
	var lastNow float64
loop:
	for {
		select {
		case frame := <-src.C:
			lastNow = frame.Now
			p.Tick(frame)
			slots := p.Slots()
			redraw(func() { printLanes(slots) })
		case <-sigChan:
			break loop
		}
	}
	fmt.Println()

	if !listenRecord {
		return nil
	}
	p.Recorder.Stop(lastNow)
	events := p.Recorder.Recording()
	fmt.Printf("Recorded %v events in session %v\n", len(events), p.Recorder.ID())
	if listenOut != "" {
		if err := record.WriteSMF(events, listenOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %v\n", listenOut)
	}
	if listenPlay {
		return playEvents(events)
	}
	return nil
}

func printLanes(slots []string) {
	parts := make([]string, 0, len(slots))
	for i, occ := range slots {
		if occ == "" {
			occ = "--"
		}
		parts = append(parts, fmt.Sprintf("%v:%-4s", i, occ))
	}
	fmt.Printf("\r%s ", strings.Join(parts, " "))
}
