package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

type RunState string

const (
	StateValidating               RunState = "validating"
	StateInterpretingRequirements RunState = "interpreting_requirements"
	StateEvaluatingCandidates     RunState = "evaluating_candidates"
	StateAggregating              RunState = "aggregating"
	StateDone                     RunState = "done"
	StateFailed                   RunState = "failed"
)

type ShortlistOptions struct {
	MaxResumes           int
	ScoreThreshold       float64
	FilterBelowThreshold bool
	RunTimeout           time.Duration
}

// RunRequest is one batch. Nil overrides fall back to ShortlistOptions.
type RunRequest struct {
	RunID          string
	JobDescription string
	Files          []models.ResumeFile

	ScoreThreshold       *float64
	FilterBelowThreshold *bool
}

type Shortlister interface {
	Run(ctx context.Context, req RunRequest) (*models.ShortlistReport, error)
}

type shortlistOrchestrator struct {
	extractor   DocumentExtractor
	interpreter RequirementInterpreter
	worker      Worker
	opts        ShortlistOptions
	logger      *zap.Logger
}

func NewShortlistOrchestrator(
	extractor DocumentExtractor,
	interpreter RequirementInterpreter,
	worker Worker,
	opts ShortlistOptions,
	log *zap.Logger,
) Shortlister {
	return &shortlistOrchestrator{
		extractor:   extractor,
		interpreter: interpreter,
		worker:      worker,
		opts:        opts,
		logger:      logger.OrNop(log),
	}
}

// run holds the state of a single invocation; nothing in it outlives Run.
type run struct {
	id        string
	state     RunState
	threshold float64
	filter    bool
	started   time.Time
	logger    *zap.Logger
}

func (r *run) transition(state RunState) {
	r.logger.Debug("run state changed", zap.String("from", string(r.state)), zap.String("to", string(state)))
	r.state = state
}

func (r *run) fail(err error) error {
	r.transition(StateFailed)
	r.logger.Error("run failed", zap.Duration("elapsed", time.Since(r.started)), zap.Error(err))
	return err
}

func (o *shortlistOrchestrator) Run(ctx context.Context, req RunRequest) (*models.ShortlistReport, error) {
	runID := strings.TrimSpace(req.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}

	r := &run{
		id:        runID,
		state:     StateValidating,
		threshold: o.opts.ScoreThreshold,
		filter:    o.opts.FilterBelowThreshold,
		started:   time.Now(),
		logger:    o.logger.With(zap.String("run_id", runID)),
	}

	if err := o.validate(req); err != nil {
		return nil, r.fail(err)
	}
	if req.ScoreThreshold != nil {
		r.threshold = *req.ScoreThreshold
	}
	if req.FilterBelowThreshold != nil {
		r.filter = *req.FilterBelowThreshold
	}

	r.logger.Info("run started", zap.Int("resumes", len(req.Files)), zap.Float64("threshold", r.threshold))

	if o.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.RunTimeout)
		defer cancel()
	}

	r.transition(StateInterpretingRequirements)
	profile, err := o.interpreter.Interpret(ctx, req.JobDescription)
	if err != nil {
		var validationErr *ValidationError
		var modelErr *ModelInvocationError
		if !errors.As(err, &validationErr) && !errors.As(err, &modelErr) {
			err = &ModelInvocationError{Stage: "requirement interpretation", Err: err}
		}
		return nil, r.fail(err)
	}
	r.logger.Info("requirements interpreted",
		zap.Strings("must_have_skills", profile.MustHaveSkills),
		zap.String("experience_level", profile.ExperienceLevel),
	)

	r.transition(StateEvaluatingCandidates)
	docs := o.extractAll(r, req.Files)
	evaluations := o.worker.EvaluateAll(ctx, profile, docs)

	r.transition(StateAggregating)
	report := BuildReport(evaluations, r.threshold, r.filter)
	report.RunID = r.id

	r.transition(StateDone)
	r.logger.Info("run completed",
		zap.Int("processed", report.TotalProcessed),
		zap.Int("failed", report.TotalFailed),
		zap.Int("extraction_failed", report.TotalExtractionFailed),
		zap.Int("above_threshold", report.AboveThreshold),
		zap.Duration("elapsed", time.Since(r.started)),
	)

	return report, nil
}

func (o *shortlistOrchestrator) validate(req RunRequest) error {
	if strings.TrimSpace(req.JobDescription) == "" {
		return &ValidationError{Field: "job_description", Message: "must not be empty"}
	}
	if len(req.Files) == 0 {
		return &ValidationError{Field: "resumes", Message: "at least one resume is required"}
	}
	if o.opts.MaxResumes > 0 && len(req.Files) > o.opts.MaxResumes {
		return &ValidationError{
			Field:   "resumes",
			Message: fmt.Sprintf("batch of %d exceeds the maximum of %d resumes", len(req.Files), o.opts.MaxResumes),
		}
	}
	if req.ScoreThreshold != nil && !validThreshold(*req.ScoreThreshold) {
		return &ValidationError{Field: "score_threshold", Message: fmt.Sprintf("must be within [0, %d]", models.MaxScore)}
	}
	return nil
}

func validThreshold(threshold float64) bool {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return false
	}
	return threshold >= 0 && threshold <= models.MaxScore
}

func (o *shortlistOrchestrator) extractAll(r *run, files []models.ResumeFile) []*models.ResumeDocument {
	docs := make([]*models.ResumeDocument, len(files))
	for i, file := range files {
		if file.SourceID == "" {
			file.SourceID = uuid.NewString()
		}

		doc, err := o.extractor.Extract(file)
		if doc == nil {
			doc = &models.ResumeDocument{SourceID: file.SourceID, Filename: file.Filename, ExtractionFailed: true}
		}
		if err != nil {
			doc.ExtractionFailed = true
			r.logger.Warn("resume extraction failed, evaluating without text",
				zap.String("source_id", file.SourceID),
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
		}
		docs[i] = doc
	}
	return docs
}

// BuildReport orders evaluations by descending score with failed entries
// last; ties keep upload order. With filter set, only scored entries at or
// above threshold are kept, but every count covers the whole batch.
func BuildReport(evaluations []*models.CandidateEvaluation, threshold float64, filter bool) *models.ShortlistReport {
	entries := make([]*models.CandidateEvaluation, 0, len(evaluations))
	report := &models.ShortlistReport{
		ThresholdApplied: threshold,
		Filtered:         filter,
		TotalProcessed:   len(evaluations),
	}

	scoreSum := 0
	scored := 0
	for _, eval := range evaluations {
		if eval == nil {
			eval = models.NewFailedEvaluation(nil, errors.New("no result returned"))
		}
		if eval.ExtractionFailed {
			report.TotalExtractionFailed++
		}
		if !eval.Scored() {
			report.TotalFailed++
		} else {
			scored++
			scoreSum += eval.Score
			if float64(eval.Score) >= threshold {
				report.AboveThreshold++
			}
		}

		if filter && (!eval.Scored() || float64(eval.Score) < threshold) {
			continue
		}
		entries = append(entries, eval)
	}

	if scored > 0 {
		report.AverageScore = float64(scoreSum) / float64(scored)
	}

	slices.SortStableFunc(entries, compareEntries)
	report.Entries = entries

	return report
}

func compareEntries(a, b *models.CandidateEvaluation) int {
	aScored, bScored := a.Scored(), b.Scored()
	if aScored != bScored {
		if aScored {
			return -1
		}
		return 1
	}
	if !aScored {
		return 0
	}
	return cmp.Compare(b.Score, a.Score)
}
