package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"slate/internal/analysis"
	"slate/internal/config"
	"slate/internal/logging"
	"slate/internal/services"
	"slate/internal/takes"
)

// Dependencies are the analysis collaborators the orchestrator drives.
type Dependencies struct {
	Visual  analysis.VisualAnalyzer
	Audio   analysis.AudioAnalyzer
	Aligner analysis.ScriptAligner
	Indexer Indexer
}

// Orchestrator runs the fixed stage sequence for one take at a time per take.
type Orchestrator struct {
	store   *takes.Store
	cfg     *config.Config
	tracker *Tracker
	stages  []Descriptor
	logger  *slog.Logger

	takeLocks sync.Map // take ID -> *sync.Mutex
}

// New wires the orchestrator with the default stage sequence.
func New(store *takes.Store, cfg *config.Config, tracker *Tracker, deps Dependencies, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		store:   store,
		cfg:     cfg,
		tracker: tracker,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
	o.stages = o.defaultStages(deps)
	return o
}

// StageNames returns the ordered stage names, for progress record shaping.
func (o *Orchestrator) StageNames() []string {
	names := make([]string, len(o.stages))
	for i, s := range o.stages {
		names[i] = s.Name
	}
	return names
}

// ProcessTake runs the full pipeline for one take. Runs for the same take are
// serialized; a second caller blocks until the first finishes and then
// re-processes. Stage failures are recorded in the progress tracker and do
// not surface as an error; only infrastructure failures (store access) do.
func (o *Orchestrator) ProcessTake(ctx context.Context, takeID int64) error {
	lock, _ := o.takeLocks.LoadOrStore(takeID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	requestID := uuid.NewString()
	ctx = services.WithRequestID(services.WithTakeID(ctx, takeID), requestID)
	log := logging.WithContext(ctx, o.logger)

	o.tracker.Begin(takeID, o.StageNames())

	take, err := o.store.GetByID(ctx, takeID)
	if err != nil {
		o.tracker.Fail(takeID, "failed to load take")
		return services.Wrap(services.ErrTransient, "pipeline", "load take", "failed to load take", err)
	}
	if take == nil {
		o.tracker.Fail(takeID, fmt.Sprintf("take %d not found", takeID))
		log.Warn("take not found, skipping pipeline run")
		return nil
	}

	sc := NewContext(log)
	note := func(line string) { o.tracker.Log(takeID, line) }

	totalWeight := 0.0
	for _, stage := range o.stages {
		totalWeight += stage.Weight
	}

	currentWeight := 0.0
	for _, stage := range o.stages {
		stageCtx := services.WithStage(ctx, stage.Namespace)
		stageLog := logging.WithContext(stageCtx, o.logger)

		o.tracker.StageRunning(takeID, stage.Name)
		note("Starting " + stage.Name + "...")
		stageLog.Info("stage started", logging.Float64("weight", stage.Weight))

		result, err := stage.Run(stageCtx, take, sc, note)
		if err != nil {
			if stage.Policy == PolicyCritical {
				msg := services.Message(err)
				o.tracker.Fail(takeID, msg)
				stageLog.Error("stage failed, aborting run", logging.Error(err))
				return nil
			}
			// Best-effort stages report failures in their result; a
			// returned error here is a contract slip, not a run failure.
			stageLog.Warn("best-effort stage returned error", logging.Error(err))
			result = nil
		}

		sc.Add(stage.Namespace, result)

		currentWeight += stage.Weight
		percent := int(math.Floor(currentWeight / totalWeight * 100))
		o.tracker.StageCompleted(takeID, stage.Name, percent)

		// Durable commit at every stage boundary so partial progress
		// survives a later fatal failure or a daemon restart.
		if err := o.store.Update(stageCtx, take); err != nil {
			msg := "failed to persist stage results"
			o.tracker.Fail(takeID, msg)
			return services.Wrap(services.ErrTransient, stage.Namespace, "persist stage results", msg, err)
		}
		stageLog.Info("stage completed", logging.Int("percent", percent))
	}

	o.tracker.Complete(takeID)
	log.Info("pipeline run completed", logging.String("request_id", requestID))
	return nil
}
