package web

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavescope/analysis"
)

type errorResponse struct {
	Error string `json:"error"`
}

type analyzeResponse struct {
	File   string           `json:"file"`
	Cached bool             `json:"cached"`
	Report *analysis.Report `json:"report"`
}

type fileEntry struct {
	Name       string `json:"name"`
	SizeBytes  int64  `json:"sizeBytes"`
	Size       string `json:"size"`
	Duration   string `json:"duration,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
}

type filesResponse struct {
	Files []fileEntry `json:"files"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Error("encode response: ", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}
