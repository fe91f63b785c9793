package model

type LanesResponse struct {
	Slots []string `json:"slots"`
}

type NotesResponse struct {
	Notes Notes `json:"notes"`
}

type HistoryResponse struct {
	History []Notes `json:"history"`
}

type RecordingResponse struct {
	ID     string      `json:"id"`
	Active bool        `json:"active"`
	Events []NoteEvent `json:"events"`
}

type PlayResponse struct {
	Scheduled int `json:"scheduled"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
