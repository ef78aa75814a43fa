package web

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/cwbudde/wavescope/analysis"
	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/dsp/window"
	"github.com/cwbudde/wavescope/internal/metrics"
	"github.com/cwbudde/wavescope/render"
)

type server struct {
	cache *resultCache
}

func newServer() *server {
	return &server{cache: newResultCache()}
}

// handleAnalyze runs the pipeline over an uploaded file or one already
// in the data directory and returns the report. Results are cached by
// content hash and options.
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var (
		name   string
		data   []byte
		source string
	)

	if file := r.URL.Query().Get("file"); file != "" {
		name = safeName(file)
		var err error
		data, err = os.ReadFile(filepath.Join(config.Get().Paths.DataDir, name))
		if err != nil {
			respondError(w, http.StatusNotFound, "no such file: "+name)
			return
		}
		source = "file"
	} else {
		var status int
		var err error
		name, data, status, err = readUpload(w, r)
		if err != nil {
			respondError(w, status, err.Error())
			return
		}
		source = "upload"
	}

	opts, err := optionsFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(sha256.Sum256(data), opts)
	if rep, ok := s.cache.get(key); ok {
		metrics.CacheHits.WithLabelValues("analysis").Inc()
		respondJSON(w, http.StatusOK, analyzeResponse{File: name, Cached: true, Report: rep})
		return
	}
	metrics.CacheMisses.WithLabelValues("analysis").Inc()

	clip, err := audio.LoadReader(bytes.NewReader(data))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	clip.Path = name

	rep, err := analysis.Analyze(clip, opts)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	metrics.AnalysesTotal.WithLabelValues(source).Inc()
	metrics.AnalysisSeconds.Observe(rep.Elapsed.Seconds())
	s.cache.put(key, rep)

	respondJSON(w, http.StatusOK, analyzeResponse{File: name, Cached: false, Report: rep})
}

// handleFiles lists the WAV inventory of the data directory.
func (s *server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := listWAVs(config.Get().Paths.DataDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, filesResponse{Files: files})
}

// handleChart streams one rendered figure as PNG.
func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := render.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file := r.URL.Query().Get("file")
	if file == "" {
		respondError(w, http.StatusBadRequest, "missing file parameter")
		return
	}
	name := safeName(file)

	clip, err := audio.Load(filepath.Join(config.Get().Paths.DataDir, name))
	if err != nil {
		respondError(w, http.StatusNotFound, "no such file: "+name)
		return
	}

	st := render.DefaultStyle()
	st.Title = kind.Title() + " - " + name

	chart, err := render.Render(kind, clip, st)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	if err := chart.EncodePNG(w); err != nil {
		requestLogger(r).Error("stream chart: ", err)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// readUpload pulls the multipart file, sniffs its content, converts
// compressed audio to WAV and stores the result in the data directory.
// The returned status only matters on error.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, int, error) {
	max := config.Get().Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, max)

	if err := r.ParseMultipartForm(max); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return "", nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("upload exceeds %s", humanize.IBytes(uint64(max)))
		}
		return "", nil, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err)
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, http.StatusBadRequest, fmt.Errorf("missing file field")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, http.StatusBadRequest, fmt.Errorf("read upload: %w", err)
	}
	metrics.UploadBytes.Observe(float64(len(data)))

	mime, err := audio.Sniff(bytes.NewReader(data))
	if err != nil {
		return "", nil, http.StatusBadRequest, err
	}
	if !isAudio(mime) {
		return "", nil, http.StatusUnsupportedMediaType,
			fmt.Errorf("unsupported content type %s", mime.String())
	}

	name := safeName(header.Filename)
	dataDir := config.Get().Paths.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", nil, http.StatusInternalServerError, err
	}

	if mime.Is("audio/wav") {
		if err := os.WriteFile(filepath.Join(dataDir, name), data, 0o644); err != nil {
			return "", nil, http.StatusInternalServerError, err
		}
		return name, data, 0, nil
	}

	// Compressed audio goes through the converter and the stored copy
	// is the WAV it produces.
	tmp, err := os.CreateTemp("", "wavescope-upload-*")
	if err != nil {
		return "", nil, http.StatusInternalServerError, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", nil, http.StatusInternalServerError, err
	}
	if err := tmp.Close(); err != nil {
		return "", nil, http.StatusInternalServerError, err
	}

	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".wav"
	dst := filepath.Join(dataDir, name)
	if err := audio.Convert(tmp.Name(), dst); err != nil {
		return "", nil, http.StatusUnprocessableEntity, err
	}

	wavData, err := os.ReadFile(dst)
	if err != nil {
		return "", nil, http.StatusInternalServerError, err
	}

	return name, wavData, 0, nil
}

// optionsFromRequest builds analysis options from query or form values
// on top of the configured defaults.
func optionsFromRequest(r *http.Request) (analysis.Options, error) {
	cfg := config.Get().Analysis

	opts := analysis.Options{FFTSize: cfg.FFTSize, MaxPeaks: cfg.HarmonicPeaks}
	if typ, err := cfg.WindowType(); err == nil {
		opts.Window = typ
	}

	if v := r.FormValue("fftSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("bad fftSize: %q", v)
		}
		opts.FFTSize = n
	}
	if v := r.FormValue("window"); v != "" {
		typ, err := window.ParseType(v)
		if err != nil {
			return opts, err
		}
		opts.Window = typ
	}
	if v := r.FormValue("filter"); v != "" {
		spec, err := analysis.ParseFilter(v)
		if err != nil {
			return opts, err
		}
		if o := r.FormValue("order"); o != "" {
			n, err := strconv.Atoi(o)
			if err != nil {
				return opts, fmt.Errorf("bad order: %q", o)
			}
			spec.Order = n
		}
		opts.Filter = spec
	}

	return opts, nil
}

func listWAVs(dir string) ([]fileEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		// An unused data directory is an empty inventory, not a failure.
		if os.IsNotExist(err) {
			return []fileEntry{}, nil
		}
		return nil, err
	}

	files := make([]fileEntry, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".wav") {
			continue
		}

		fi, err := de.Info()
		if err != nil {
			continue
		}

		entry := fileEntry{
			Name:      de.Name(),
			SizeBytes: fi.Size(),
			Size:      humanize.IBytes(uint64(fi.Size())),
		}
		if info, err := audio.Stat(filepath.Join(dir, de.Name())); err == nil {
			entry.Duration = info.Duration.Round(10 * time.Millisecond).String()
			entry.SampleRate = info.SampleRate
			entry.Channels = info.Channels
		}

		files = append(files, entry)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

func isAudio(m *mimetype.MIME) bool {
	return strings.HasPrefix(m.String(), "audio/") || m.Is("application/ogg")
}

// safeName confines client-supplied names to a bare file name inside
// the data directory.
func safeName(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\\", "/")
	s = filepath.Base(s)
	if s == "" || s == "." || s == ".." || s == "/" {
		return "upload.wav"
	}

	return s
}
