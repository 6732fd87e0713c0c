package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docmark/internal/marker"
	"github.com/dgallion1/docmark/internal/normalize"
	"github.com/dgallion1/docmark/internal/parser"
)

// handleMark runs one uploaded document through the full marker pipeline and
// returns the annotated text. The call is synchronous: the response arrives
// when the model does.
func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	ps, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := ps.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	text := normalize.Normalize(doc.Text)
	if r.FormValue("cleanup") == "true" || normalize.NeedsCleanup(filename, s.cfg.CleanupPathTag) {
		text = normalize.CleanupBrochure(text)
	}

	markerToken := r.FormValue("marker")
	if markerToken == "" {
		markerToken = s.cfg.Marker
	}

	out, err := s.gen.GenerateContent(r.Context(), marker.SystemInstruction, marker.BuildPrompt(markerToken, text))
	if err != nil {
		var blocked *marker.BlockedError
		if errors.As(err, &blocked) {
			jsonError(w, blocked.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("model call failed", "filename", filename, "error", err)
		jsonError(w, "model call failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	out = marker.StripFence(out)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("X-Marker-Count", strconv.Itoa(strings.Count(out, markerToken)))
	w.Write([]byte(out))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
