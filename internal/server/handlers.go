package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sheetprep/internal/codegen"
	"sheetprep/internal/dataset"
	"sheetprep/internal/export"
	"sheetprep/internal/ingest"
	"sheetprep/internal/transform"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

type uploadData struct {
	ID             string         `json:"id"`
	FileName       string         `json:"file_name"`
	FileSize       string         `json:"file_size"`
	Shape          [2]int         `json:"shape"`
	Columns        []string       `json:"columns"`
	NumericColumns []string       `json:"numeric_columns"`
	MissingValues  map[string]int `json:"missing_values"`
	Preview        [][]string     `json:"preview"`
}

type applyData struct {
	Message      string     `json:"message"`
	Summary      string     `json:"summary,omitempty"`
	Code         string     `json:"code"`
	CompleteCode string     `json:"complete_code"`
	CanDownload  bool       `json:"can_download"`
	Shape        [2]int     `json:"shape"`
	Preview      [][]string `json:"preview"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, dataset.E(dataset.KindFileTooLarge, "file exceeds the %s upload limit", formatSize(s.cfg.MaxUploadBytes)))
			return
		}
		s.writeError(w, dataset.Wrap(dataset.KindParseError, err, "parse multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, dataset.Wrap(dataset.KindParseError, err, "read uploaded file"))
		return
	}
	defer file.Close()

	// Reject unknown extensions before touching the content.
	if !ingest.CanIngest(header.Filename) {
		s.writeError(w, dataset.E(dataset.KindUnsupportedFormat, "unsupported file type %q (want .csv, .xlsx or .xls)", header.Filename))
		return
	}
	if header.Size > s.cfg.MaxUploadBytes {
		s.writeError(w, dataset.E(dataset.KindFileTooLarge, "file is %s, limit is %s", formatSize(header.Size), formatSize(s.cfg.MaxUploadBytes)))
		return
	}

	ds, err := ingest.Read(file, header.Filename, ingest.Options{MaxRows: s.cfg.MaxRows})
	if err != nil {
		s.writeError(w, err)
		return
	}

	ws := s.store.create(header.Filename, header.Size, ds)
	rows, cols := ds.Shape()
	title, code := codegen.LoadStep(header.Filename, rows, cols)
	ws.History.Append(title, code)

	numeric := make([]string, 0, len(ds.Headers))
	for _, col := range ds.NumericColumnIndexes() {
		numeric = append(numeric, ds.Headers[col])
	}
	s.log.Info("dataset uploaded",
		zap.String("dataset_id", ws.ID),
		zap.String("file", header.Filename),
		zap.Int("rows", rows),
		zap.Int("cols", cols))

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: uploadData{
		ID:             ws.ID,
		FileName:       ws.FileName,
		FileSize:       formatSize(ws.FileSize),
		Shape:          [2]int{rows, cols},
		Columns:        ds.Headers,
		NumericColumns: numeric,
		MissingValues:  ds.MissingCounts(),
		Preview:        s.preview(ds),
	}})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.store.get(r.PathValue("id"))
	if !ok {
		s.writeError(w, dataset.E(dataset.KindNotFound, "dataset %q not found", r.PathValue("id")))
		return
	}
	var req transform.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, dataset.Wrap(dataset.KindParseError, err, "decode request body"))
		return
	}
	op, err := req.Parse()
	if err != nil {
		s.writeError(w, err)
		return
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	out, err := transform.Apply(ws.Data, op, transform.Options{NaNPolicy: s.nan})
	if err != nil {
		s.writeError(w, err)
		return
	}
	title, code := codegen.Snippet(op, out)
	ws.History.Append(title, code)

	rows, cols := ws.Data.Shape()
	s.log.Info("operation applied",
		zap.String("dataset_id", ws.ID),
		zap.Stringer("operation", op.Kind),
		zap.Int("rows_before", out.RowsBefore),
		zap.Int("rows_after", out.RowsAfter))

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: applyData{
		Message:      out.Message,
		Summary:      out.Summary,
		Code:         code,
		CompleteCode: ws.History.Render(),
		CanDownload:  out.Mutated,
		Shape:        [2]int{rows, cols},
		Preview:      s.preview(ws.Data),
	}})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.store.get(r.PathValue("id"))
	if !ok {
		s.writeError(w, dataset.E(dataset.KindNotFound, "dataset %q not found", r.PathValue("id")))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		s.writeError(w, dataset.E(dataset.KindUnsupportedFormat, "unsupported download format %q (want xlsx or csv)", format))
		return
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(format)))
	var err error
	if format == "csv" {
		err = export.WriteCSV(w, ws.Data)
	} else {
		err = export.WriteXLSX(w, ws.Data)
	}
	if err != nil {
		s.log.Error("download failed", zap.String("dataset_id", ws.ID), zap.Error(err))
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.delete(id) {
		s.writeError(w, dataset.E(dataset.KindNotFound, "dataset %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}

func (s *Server) preview(ds *dataset.Dataset) [][]string {
	n := s.cfg.PreviewRows
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	return ds.Rows[:n]
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := dataset.KindOf(err)
	writeJSON(w, statusFor(kind), apiResponse{
		Success: false,
		Error:   err.Error(),
		Kind:    kind.String(),
	})
}

func statusFor(k dataset.Kind) int {
	switch k {
	case dataset.KindUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case dataset.KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case dataset.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
