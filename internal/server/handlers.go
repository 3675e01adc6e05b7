package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/transcript-scorer/internal/ingestion"
	"github.com/jonathan/transcript-scorer/internal/pipeline"
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// maxUploadBytes caps multipart request memory. Transcripts and rubrics are
// small documents.
const maxUploadBytes = 10 << 20

// ScoreRequest is the JSON body accepted by POST /score. Rubric, when
// present, may be a canonical rubric object or a raw string for the
// formatter.
type ScoreRequest struct {
	Transcript      string          `json:"transcript" validate:"required"`
	Rubric          json.RawMessage `json:"rubric,omitempty"`
	DurationSeconds int             `json:"duration_seconds,omitempty" validate:"gte=0"`
}

// ScoreResponse is the success payload for POST /score.
type ScoreResponse struct {
	RequestID string               `json:"request_id"`
	Result    *types.ScoringResult `json:"result"`
	Rubric    *types.Rubric        `json:"rubric"`
	Metrics   *types.MetricsBundle `json:"metrics"`
}

// MetricsRequest is the JSON body accepted by POST /metrics.
type MetricsRequest struct {
	Transcript      string `json:"transcript" validate:"required"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"gte=0"`
}

// handleScore runs the full scoring pipeline for one transcript. It accepts
// either a JSON body or multipart form data with file uploads.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	req, err := s.parseScoreRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("[%s] scoring request: %d chars, duration=%ds", requestID, len(req.Transcript), req.DurationSeconds)

	resp, err := s.scorer.Process(r.Context(), *req)
	if err != nil {
		s.writePipelineError(w, requestID, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		RequestID: requestID,
		Result:    resp.Result,
		Rubric:    resp.Rubric,
		Metrics:   resp.Metrics,
	})
}

// handleMetricsOnly computes the deterministic metric bundle without calling
// the generative service.
func (s *Server) handleMetricsOnly(w http.ResponseWriter, r *http.Request) {
	var req MetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	bundle, err := s.metrics.Compute(r.Context(), req.Transcript, req.DurationSeconds)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, bundle)
}

// parseScoreRequest turns either a JSON or multipart request into a pipeline
// request.
func (s *Server) parseScoreRequest(r *http.Request) (*pipeline.Request, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return s.parseMultipart(r)
	}
	return s.parseJSON(r)
}

func (s *Server) parseJSON(r *http.Request) (*pipeline.Request, error) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("Invalid request body: " + err.Error())
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.New(validationMessage(err))
	}

	out := &pipeline.Request{
		Transcript:      req.Transcript,
		DurationSeconds: req.DurationSeconds,
	}
	if len(req.Rubric) > 0 {
		in, err := rubricFromJSON(req.Rubric)
		if err != nil {
			return nil, err
		}
		out.Rubric = in
	}
	return out, nil
}

// rubricFromJSON interprets the rubric field: a JSON object goes through
// canonical detection, a JSON string is raw material for the formatter.
func rubricFromJSON(raw json.RawMessage) (*rubric.Input, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "\"") {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errors.New("rubric must be an object or a string")
		}
		return &rubric.Input{Raw: text}, nil
	}

	in, err := rubric.ParseUpload("rubric.json", raw)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *Server) parseMultipart(r *http.Request) (*pipeline.Request, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errors.New("Invalid multipart form: " + err.Error())
	}

	out := &pipeline.Request{}

	if v := r.FormValue("duration_seconds"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 0 {
			return nil, errors.New("duration_seconds must be a non-negative integer")
		}
		out.DurationSeconds = seconds
	}

	out.Transcript = r.FormValue("transcript")
	if out.Transcript == "" {
		name, data, err := readUpload(r, "transcript_file")
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, errors.New("either transcript or transcript_file is required")
		}
		text, err := ingestion.ExtractTranscript(name, data)
		if err != nil {
			return nil, err
		}
		out.Transcript = text
	}

	name, data, err := readUpload(r, "rubric_file")
	if err != nil {
		return nil, err
	}
	if data != nil {
		in, err := rubric.ParseUpload(name, data)
		if err != nil {
			return nil, err
		}
		out.Rubric = &in
	}

	return out, nil
}

// readUpload reads one optional multipart file. A missing part returns nil
// data without error.
func readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, errors.New("failed to read " + field + ": " + err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", nil, errors.New("failed to read " + field + ": " + err.Error())
	}
	return header.Filename, data, nil
}

// writePipelineError maps pipeline failures onto HTTP statuses. Input
// problems are the caller's fault; exhaustion means the upstream service
// kept failing.
func (s *Server) writePipelineError(w http.ResponseWriter, requestID string, err error) {
	log.Printf("[%s] scoring failed: %v", requestID, err)

	var inputErr *pipeline.InputError
	if errors.As(err, &inputErr) {
		s.errorResponse(w, http.StatusBadRequest, inputErr.Error())
		return
	}

	var exhausted *pipeline.ExhaustedError
	if errors.As(err, &exhausted) {
		s.errorResponse(w, http.StatusBadGateway, exhausted.Error())
		return
	}

	var formatExhausted *rubric.ExhaustedError
	if errors.As(err, &formatExhausted) {
		s.errorResponse(w, http.StatusBadGateway, formatExhausted.Error())
		return
	}

	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

func validationMessage(err error) string {
	return "validation error: " + err.Error()
}
