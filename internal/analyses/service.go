package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

// Analysis is the outcome of one optimization run. Result is the decoded
// object as the model produced it, after normalization.
type Analysis struct {
	ID           string
	Result       map[string]any
	Persisted    bool
	ProcessingMs int64
}

// Service runs the analysis pipeline: complete, extract, validate, persist.
type Service struct {
	LLM       llm.Client
	Repo      Repo
	MaxTokens int
}

func NewService(client llm.Client, repo Repo, maxTokens int) *Service {
	return &Service{LLM: client, Repo: repo, MaxTokens: maxTokens}
}

// Analyze performs a single optimization run. The completion call is made
// exactly once; there is no retry. Persistence is best-effort: an insert
// failure is logged and the analysis still succeeds.
func (s *Service) Analyze(ctx context.Context, userID, resumeText, jobDescription string) (Analysis, error) {
	id := uuid.NewString()
	start := time.Now()

	completion, err := s.LLM.Complete(ctx, llm.CompletionRequest{
		System:      SystemPrompt,
		UserMessage: BuildUserMessage(resumeText, jobDescription),
		MaxTokens:   s.MaxTokens,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("completion: %w", err)
	}

	result, err := ExtractJSON(completion.Text)
	if err != nil {
		return Analysis{}, err
	}

	result = Normalize(result)

	if err := ValidateResult(result); err != nil {
		return Analysis{}, err
	}

	processingMs := time.Since(start).Milliseconds()

	analysis := Analysis{
		ID:           id,
		Result:       result,
		ProcessingMs: processingMs,
	}
	analysis.Persisted = s.persist(ctx, analysis, userID, resumeText, jobDescription)
	return analysis, nil
}

func (s *Service) persist(ctx context.Context, analysis Analysis, userID, resumeText, jobDescription string) bool {
	if s.Repo == nil {
		return false
	}

	resultJSON, err := json.Marshal(analysis.Result)
	if err != nil {
		telemetry.Error("analysis.persist_failed", map[string]any{
			"analysis_id": analysis.ID,
			"error":       err.Error(),
		})
		metrics.IncPersistenceFailed()
		return false
	}

	if userID == "" {
		userID = "anonymous"
	}
	rec := Record{
		ID:             analysis.ID,
		UserID:         userID,
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Result:         resultJSON,
		Status:         StatusCompleted,
		ProcessingMs:   analysis.ProcessingMs,
	}
	if err := s.Repo.Insert(ctx, rec); err != nil {
		telemetry.Error("analysis.persist_failed", map[string]any{
			"analysis_id": analysis.ID,
			"user_id":     userID,
			"error":       err.Error(),
		})
		metrics.IncPersistenceFailed()
		return false
	}
	return true
}

// GetByID loads one persisted analysis.
func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	if s.Repo == nil {
		return Record{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// ListByUser loads the caller's analysis history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Summarize projects a persisted record into its list view.
func Summarize(rec Record) Summary {
	summary := Summary{
		ID:        rec.ID,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
	}
	var result AnalysisResult
	if err := json.Unmarshal(rec.Result, &result); err == nil {
		summary.Role = result.JDAnalysis.Role
		summary.Company = result.JDAnalysis.Company
		summary.Score, _ = Score(result.GapAnalysis)
	}
	return summary
}
