package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/render"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type dashboardData struct {
	Files      []fileEntry
	FFTSizes   []int
	DefaultFFT int
	Windows    []string
	Kinds      []render.Kind
}

// handleDashboard renders the single-page UI. Chart images and reports
// are fetched from the API by the page's own script.
func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	files, err := listWAVs(config.Get().Paths.DataDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := dashboardData{
		Files:      files,
		FFTSizes:   []int{256, 512, 1024, 2048, 4096, 8192},
		DefaultFFT: config.Get().Analysis.FFTSize,
		Windows:    []string{"rectangular", "hann", "hamming", "blackman", "flattop"},
		Kinds:      render.Kinds(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		requestLogger(r).Error("render dashboard: ", err)
	}
}
