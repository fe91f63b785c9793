package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/play"
	"github.com/jsphweid/notelane/record"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Synthesize a recorded take",
	Long:  `Loads a MIDI file written by listen --record --out and plays it back as sine tones.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := record.ReadSMF(args[0])
		if err != nil {
			return err
		}
		return playEvents(events)
	},
}

func playEvents(events []model.NoteEvent) error {
	synth, err := play.NewSynth()
	if err != nil {
		return fmt.Errorf("could not open audio output: %w", err)
	}
	defer synth.Close()

	n := play.Schedule(events, synth)
	fmt.Printf("Playing %v notes\n", n)
	for !synth.Idle() {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
