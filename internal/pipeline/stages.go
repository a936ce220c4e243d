package pipeline

import (
	"context"

	"slate/internal/analysis"
	"slate/internal/scoring"
	"slate/internal/services"
	"slate/internal/takes"
)

// Stage names as they appear in progress records and log lines.
const (
	StageFrameAnalysis   = "Frame & Data Analysis"
	StageAudioProcessing = "Audio Processing"
	StageScriptAlignment = "Script Alignment"
	StageScoring         = "Intelligence Scoring"
	StageIntentIndexing  = "Intent Indexing"
)

// Indexer is the best-effort semantic indexing step. It reports failures in
// its result instead of returning an error.
type Indexer interface {
	IndexTake(ctx context.Context, take *takes.Take, cv, audio analysis.Result, transcript string, note func(string)) analysis.Result
}

func (o *Orchestrator) defaultStages(deps Dependencies) []Descriptor {
	return []Descriptor{
		{
			Name:      StageFrameAnalysis,
			Namespace: takes.NamespaceCV,
			Weight:    2.0,
			Policy:    PolicyCritical,
			Run:       o.runFrameAnalysis(deps.Visual),
		},
		{
			Name:      StageAudioProcessing,
			Namespace: takes.NamespaceAudio,
			Weight:    2.0,
			Policy:    PolicyCritical,
			Run:       o.runAudioProcessing(deps.Audio),
		},
		{
			Name:      StageScriptAlignment,
			Namespace: takes.NamespaceNLP,
			Weight:    1.0,
			Policy:    PolicyCritical,
			Run:       o.runScriptAlignment(deps.Aligner),
		},
		{
			Name:      StageScoring,
			Namespace: "score",
			Weight:    0.5,
			Policy:    PolicyCritical,
			Run:       o.runScoring(),
		},
		{
			Name:      StageIntentIndexing,
			Namespace: "intent",
			Weight:    0.5,
			Policy:    PolicyBestEffort,
			Run:       o.runIntentIndexing(deps.Indexer),
		},
	}
}

// runFrameAnalysis inspects the frames, records the measured duration, and
// persists the visual namespace.
func (o *Orchestrator) runFrameAnalysis(visual analysis.VisualAnalyzer) RunFunc {
	return func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error) {
		result, err := visual.Analyze(ctx, take.FilePath)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, takes.NamespaceCV, "analyze frames",
				"Frame analysis failed", err)
		}
		if duration := result.Float(analysis.KeyDuration, 0); duration > 0 {
			take.DurationSeconds = &duration
		}
		take.SetMetadata(takes.NamespaceCV, map[string]any(result))
		take.SetReasoning(takes.NamespaceCV, result.String(analysis.KeyReasoning, ""))
		return result, nil
	}
}

// runAudioProcessing inspects the audio track and persists the audio
// namespace. The transcript reaches later stages through the shared context.
func (o *Orchestrator) runAudioProcessing(audio analysis.AudioAnalyzer) RunFunc {
	return func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error) {
		result, err := audio.Analyze(ctx, take.FilePath)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, takes.NamespaceAudio, "analyze audio",
				"Audio analysis failed", err)
		}
		take.SetMetadata(takes.NamespaceAudio, map[string]any(result))
		take.SetReasoning(takes.NamespaceAudio, result.String(analysis.KeyReasoning, ""))
		return result, nil
	}
}

// runScriptAlignment compares the accumulated transcript (empty when the
// audio stage produced none) against the configured target line.
func (o *Orchestrator) runScriptAlignment(aligner analysis.ScriptAligner) RunFunc {
	return func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error) {
		result, err := aligner.Align(ctx, sc.Transcript(), o.cfg.Script.TargetLine)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, takes.NamespaceNLP, "align script",
				"Script alignment failed", err)
		}
		take.SetMetadata(takes.NamespaceNLP, map[string]any(result))
		take.SetReasoning(takes.NamespaceNLP, result.String(analysis.KeyReasoning, ""))
		return result, nil
	}
}

// runScoring blends the three analysis namespaces into the confidence score
// and then applies the description backstop to the presented metadata.
func (o *Orchestrator) runScoring() RunFunc {
	return func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error) {
		score := scoring.Compute(
			sc.Result(takes.NamespaceCV),
			sc.Result(takes.NamespaceAudio),
			sc.Result(takes.NamespaceNLP),
		)
		total := score.Total
		take.ConfidenceScore = &total
		take.SetReasoning(takes.ReasoningSummary, score.Summary)
		take.SetMetadata(takes.NamespaceScoreBreakdown, score.Breakdown.Map())
		scoring.BackstopDescriptions(take.AIMetadata)
		return analysis.Result{
			"confidence_score": score.Total,
			"summary":          score.Summary,
		}, nil
	}
}

// runIntentIndexing hands the take to the indexing adapter. The adapter
// catches its own failures, so this stage never aborts the run.
func (o *Orchestrator) runIntentIndexing(indexer Indexer) RunFunc {
	return func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error) {
		result := indexer.IndexTake(ctx, take,
			sc.Result(takes.NamespaceCV),
			sc.Result(takes.NamespaceAudio),
			sc.Transcript(),
			note,
		)
		return result, nil
	}
}
