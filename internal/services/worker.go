package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

// Worker evaluates a batch of documents with bounded concurrency.
type Worker interface {
	// EvaluateAll returns one evaluation per document, in document order.
	// Failed evaluations are returned as sentinel entries, never dropped.
	EvaluateAll(ctx context.Context, profile *models.RequirementProfile, docs []*models.ResumeDocument) []*models.CandidateEvaluation
}

type worker struct {
	evaluator   CandidateEvaluator
	concurrency int
	logger      *zap.Logger
}

func NewWorker(evaluator CandidateEvaluator, concurrency int, log *zap.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{
		evaluator:   evaluator,
		concurrency: concurrency,
		logger:      logger.OrNop(log),
	}
}

func (w *worker) EvaluateAll(ctx context.Context, profile *models.RequirementProfile, docs []*models.ResumeDocument) []*models.CandidateEvaluation {
	results := make([]*models.CandidateEvaluation, len(docs))
	if len(docs) == 0 {
		return results
	}

	jobQueue := make(chan int, len(docs))
	for i := range docs {
		jobQueue <- i
	}
	close(jobQueue)

	workers := min(w.concurrency, len(docs))
	w.logger.Debug("starting evaluation workers", zap.Int("workers", workers), zap.Int("jobs", len(docs)))

	var g errgroup.Group
	for workerID := 1; workerID <= workers; workerID++ {
		g.Go(func() error {
			for idx := range jobQueue {
				// Each index is owned by exactly one worker.
				results[idx] = w.processJob(ctx, workerID, profile, docs[idx])
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (w *worker) processJob(ctx context.Context, workerID int, profile *models.RequirementProfile, doc *models.ResumeDocument) (eval *models.CandidateEvaluation) {
	log := w.logger.With(
		zap.Int("worker", workerID),
		zap.String("source_id", doc.SourceID),
		zap.String("filename", doc.Filename),
	)

	defer func() {
		if r := recover(); r != nil {
			err := &CandidateEvaluationError{SourceID: doc.SourceID, Err: fmt.Errorf("panic: %v", r)}
			log.Error("candidate evaluation panicked", zap.Error(err))
			eval = models.NewFailedEvaluation(doc, err)
		}
	}()

	eval, err := w.evaluator.Evaluate(ctx, profile, doc)
	if err != nil {
		log.Warn("candidate evaluation failed", zap.Error(err))
		return models.NewFailedEvaluation(doc, unwrapCandidateError(err))
	}
	if eval == nil {
		log.Warn("candidate evaluation returned no result")
		return models.NewFailedEvaluation(doc, errors.New("no result returned"))
	}

	log.Info("candidate evaluated", zap.Int("score", eval.Score))
	return eval
}

// unwrapCandidateError strips the source-id prefix so the recorded reasoning
// reads "evaluation failed: <cause>".
func unwrapCandidateError(err error) error {
	var candidateErr *CandidateEvaluationError
	if errors.As(err, &candidateErr) && candidateErr.Err != nil {
		return candidateErr.Err
	}
	return err
}
