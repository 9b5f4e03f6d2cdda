package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resumescan-backend/internal/extract"
	"resumescan-backend/internal/metrics"
	"resumescan-backend/internal/records"
	"resumescan-backend/internal/render"
	"resumescan-backend/internal/scoring"
	"resumescan-backend/internal/telemetry"
)

// Uploader is the storage-service boundary the pipeline uploads through.
type Uploader interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (string, error)
}

// Renderer converts a document into a raster image artifact.
type Renderer interface {
	Render(ctx context.Context, doc render.Document) render.RenderedImage
}

// Request carries one submitted document and its job context. Metadata
// fields may be empty; they are stored as-is.
type Request struct {
	FileName       string
	Data           []byte
	CompanyName    string
	JobTitle       string
	JobDescription string
}

// Service drives the end-to-end analysis sequence: upload resume, render,
// upload image, persist a pending record, score, persist the result. Each
// stage is gated on the previous one succeeding; the first failure aborts
// the run. Nothing is retried.
type Service struct {
	Store    Uploader
	Renderer Renderer
	Records  *records.Store
	Scorer   scoring.Client

	// NewID overrides identifier generation, for tests. Defaults to UUIDs.
	NewID func() string

	// OnStatus, when set, observes every status transition. It is called
	// synchronously before each stage begins.
	OnStatus func(id string, status Status)
}

// Start launches an asynchronous run and returns its identifier
// immediately. The run continues after the caller's context is done;
// only its values (request id) are carried over.
func (s *Service) Start(ctx context.Context, req Request) string {
	id := s.newID()
	go s.run(context.WithoutCancel(ctx), id, req)
	return id
}

// Analyze executes a run synchronously and returns the final record, or
// an *AbortError describing the failed stage.
func (s *Service) Analyze(ctx context.Context, req Request) (records.EvaluationRecord, error) {
	return s.analyze(ctx, s.newID(), req)
}

func (s *Service) run(ctx context.Context, id string, req Request) {
	// analyze converts its own panics to aborts; this guard only catches a
	// failure inside the abort path itself.
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("pipeline.panic", map[string]any{
				"record_id": id,
				"error":     fmt.Sprintf("%v", rec),
			})
		}
	}()

	if _, err := s.analyze(ctx, id, req); err != nil {
		var abort *AbortError
		if !errors.As(err, &abort) {
			telemetry.Error("pipeline.error", map[string]any{
				"record_id": id,
				"error":     err.Error(),
			})
		}
	}
}

func (s *Service) analyze(ctx context.Context, id string, req Request) (out records.EvaluationRecord, retErr error) {
	startedAt := time.Now()
	metrics.IncRunStarted()

	stage := StageUploading
	var pending *records.EvaluationRecord
	defer func() {
		if p := recover(); p != nil {
			out = records.EvaluationRecord{}
			retErr = s.abort(ctx, pending, id, stage, stageReason(stage), fmt.Errorf("panic: %v", p))
		}
	}()

	s.setStatus(id, Status{Stage: StageUploading})
	resumeLocation, err := s.Store.Upload(ctx, req.FileName, bytes.NewReader(req.Data))
	if err != nil {
		return records.EvaluationRecord{}, s.abort(ctx, nil, id, StageUploading, ReasonUploadFailed, err)
	}

	stage = StageConverting
	s.setStatus(id, Status{Stage: StageConverting})
	rendered := s.Renderer.Render(ctx, render.Document{FileName: req.FileName, Data: req.Data})
	if !rendered.HasArtifact() {
		// A failure reason alone is not fatal here; only artifact
		// absence aborts this stage.
		reason := errors.New("no artifact produced")
		if rendered.Err != "" {
			reason = errors.New(rendered.Err)
		}
		return records.EvaluationRecord{}, s.abort(ctx, nil, id, StageConverting, ReasonConvertFailed, reason)
	}

	stage = StageUploadingImage
	s.setStatus(id, Status{Stage: StageUploadingImage})
	imageLocation, err := s.Store.Upload(ctx, rendered.FileName, bytes.NewReader(rendered.Data))
	if err != nil {
		return records.EvaluationRecord{}, s.abort(ctx, nil, id, StageUploadingImage, ReasonImageUploadFailed, err)
	}

	stage = StagePersistingRecord
	s.setStatus(id, Status{Stage: StagePersistingRecord})
	now := time.Now().UTC()
	rec := records.EvaluationRecord{
		ID:             id,
		ResumeLocation: resumeLocation,
		ImageLocation:  imageLocation,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Status:         records.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Records.Save(ctx, rec); err != nil {
		return records.EvaluationRecord{}, s.abort(ctx, nil, id, StagePersistingRecord, ReasonPersistFailed, err)
	}
	pending = &rec

	stage = StageScoring
	s.setStatus(id, Status{Stage: StageScoring})
	resumeText := ""
	if text, err := extract.Text(req.Data); err == nil {
		resumeText = text
	}
	instructions := scoring.BuildInstructions(req.JobTitle, req.JobDescription, resumeText)
	resp, err := s.Scorer.Score(ctx, imageLocation, instructions)
	if err != nil || resp == nil {
		return records.EvaluationRecord{}, s.abort(ctx, &rec, id, StageScoring, ReasonScoreFailed, err)
	}
	feedback := scoring.ParseFeedback(scoring.ContentText(resp))

	stage = StagePersistingResult
	s.setStatus(id, Status{Stage: StagePersistingResult})
	rec.Feedback = feedback
	rec.Status = records.StatusCompleted
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Records.Save(ctx, rec); err != nil {
		return records.EvaluationRecord{}, s.abort(ctx, &rec, id, StagePersistingResult, ReasonPersistFailed, err)
	}
	pending = nil

	s.setStatus(id, Status{Stage: StageComplete, Detail: id})
	durationMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	metrics.IncRunCompleted()
	metrics.ObserveRunDurationMs(durationMs)
	telemetry.Info("pipeline.status", map[string]any{
		"record_id":   id,
		"stage":       StageComplete.String(),
		"duration_ms": durationMs,
	})
	return rec, nil
}

// abort marks the run failed. When a pending record was already persisted,
// its stored status flips to aborted so readers can tell it apart from an
// in-flight run.
func (s *Service) abort(ctx context.Context, rec *records.EvaluationRecord, id string, stage Stage, reason string, err error) error {
	s.setStatus(id, Status{Stage: StageAborted, Detail: reason})
	metrics.IncRunAborted()

	fields := map[string]any{
		"record_id": id,
		"stage":     stage.String(),
		"reason":    reason,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Error("pipeline.aborted", fields)

	if rec != nil {
		rec.Status = records.StatusAborted
		rec.UpdatedAt = time.Now().UTC()
		if saveErr := s.Records.Save(ctx, *rec); saveErr != nil {
			telemetry.Error("pipeline.abort_persist", map[string]any{
				"record_id": id,
				"error":     saveErr.Error(),
			})
		}
	}

	return &AbortError{Stage: stage, Reason: reason, Err: err}
}

func (s *Service) setStatus(id string, status Status) {
	telemetry.Info("pipeline.status", map[string]any{
		"record_id": id,
		"stage":     status.Stage.String(),
		"detail":    status.Detail,
	})
	if s.OnStatus != nil {
		s.OnStatus(id, status)
	}
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
