package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/notelane/capture"
	"github.com/jsphweid/notelane/constants"
	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/pipeline"
	"github.com/jsphweid/notelane/play"
)

func init() {
	serveCmd.Flags().IntVar(&flagThreshold, "threshold", constants.PeakThreshold, "peak amplitude threshold (0-255)")
	serveCmd.Flags().Float64Var(&flagMinDuration, "min-duration", constants.MinNoteDurationMs, "ms a note must persist before it counts")
	serveCmd.Flags().IntVar(&flagMaxNotes, "max-notes", constants.MaxNotesShown, "display lanes / peaks considered per frame")
	serveCmd.Flags().Float64Var(&flagFreqScale, "freq-scale", constants.MaxFrequencyScale, "fraction of the spectrum scanned")
	serveCmd.Flags().Float64Var(&flagMaxRecordMs, "max-record", constants.MaxRecordingMs, "recording ceiling in ms")
	serveCmd.Flags().IntVar(&flagMaxPoly, "max-poly", constants.MaxRecordedNotes, "max simultaneously recorded notes")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline behind an HTTP API",
	Long:  `Runs the microphone pipeline and exposes lanes, notes and the recorder over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// pipelineServer serializes HTTP access against the frame-driven ticks; the
// pipeline itself assumes a single logical thread of mutation.
type pipelineServer struct {
	mu      sync.Mutex
	pipe    *pipeline.Pipeline
	synth   *play.Synth
	lastNow float64
}

func serve() error {
	src, err := capture.NewSource(constants.FFTSize, constants.SampleRate)
	if err != nil {
		return fmt.Errorf("could not acquire audio source: %w", err)
	}
	defer src.Close()

	s := &pipelineServer{pipe: newPipeline()}
	go func() {
		for frame := range src.C {
			s.mu.Lock()
			s.lastNow = frame.Now
			s.pipe.Tick(frame)
			s.mu.Unlock()
		}
	}()
	if err := src.Start(); err != nil {
		return fmt.Errorf("could not start audio source: %w", err)
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/lanes", s.handleLanes).Methods("GET")
	router.HandleFunc("/notes", s.handleNotes).Methods("GET")
	router.HandleFunc("/notes/history", s.handleHistory).Methods("GET")
	router.HandleFunc("/record/start", s.handleRecordStart).Methods("POST")
	router.HandleFunc("/record/stop", s.handleRecordStop).Methods("POST")
	router.HandleFunc("/recording", s.handleRecording).Methods("GET")
	router.HandleFunc("/play", s.handlePlay).Methods("POST")

	addr := constants.GetServeAddr()
	fmt.Printf("Serving on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, cors.AllowAll().Handler(router)))
	return nil
}

func (s *pipelineServer) handleLanes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	slots := s.pipe.Slots()
	s.mu.Unlock()
	json.NewEncoder(w).Encode(model.LanesResponse{Slots: slots})
}

func (s *pipelineServer) handleNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	notes := s.pipe.Confirmed()
	s.mu.Unlock()
	json.NewEncoder(w).Encode(model.NotesResponse{Notes: notes})
}

func (s *pipelineServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	history := s.pipe.History()
	s.mu.Unlock()
	json.NewEncoder(w).Encode(model.HistoryResponse{History: history})
}

func (s *pipelineServer) handleRecordStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.pipe.Recorder.Start(s.lastNow)
	resp := model.RecordingResponse{ID: s.pipe.Recorder.ID(), Active: true}
	s.mu.Unlock()
	json.NewEncoder(w).Encode(resp)
}

func (s *pipelineServer) handleRecordStop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.pipe.Recorder.Stop(s.lastNow)
	resp := model.RecordingResponse{
		ID:     s.pipe.Recorder.ID(),
		Active: false,
		Events: s.pipe.Recorder.Recording(),
	}
	s.mu.Unlock()
	json.NewEncoder(w).Encode(resp)
}

func (s *pipelineServer) handleRecording(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := model.RecordingResponse{
		ID:     s.pipe.Recorder.ID(),
		Active: s.pipe.Recorder.Active(),
		Events: s.pipe.Recorder.Recording(),
	}
	s.mu.Unlock()
	json.NewEncoder(w).Encode(resp)
}

func (s *pipelineServer) handlePlay(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := s.pipe.Recorder.Recording()
	if s.synth == nil {
		synth, err := play.NewSynth()
		if err != nil {
			s.mu.Unlock()
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
			return
		}
		s.synth = synth
	}
	n := play.Schedule(events, s.synth)
	s.mu.Unlock()
	json.NewEncoder(w).Encode(model.PlayResponse{Scheduled: n})
}
