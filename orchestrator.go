package sofa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the bounded wait used when draining the stage
// completion queue. It trades UI responsiveness against busy-waiting; the
// exact value is not a correctness requirement.
const DefaultPollInterval = 500 * time.Millisecond

// MaxSuggestions bounds how many alternative topics a rejection shows.
const MaxSuggestions = 5

// Orchestrator supervises one four-stage dialogue pipeline per Run call,
// forwarding incremental progress to the consumer as snapshots.
type Orchestrator struct {
	pipeline     TaskPipeline
	gate         ModerationGate
	suggestions  SuggestionSource
	logger       *logrus.Logger
	pollInterval time.Duration
}

type orchestratorOptions struct {
	logger       *logrus.Logger
	pollInterval time.Duration
}

// Option configures an Orchestrator.
type Option func(*orchestratorOptions)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *orchestratorOptions) {
		o.logger = logger
	}
}

// WithPollInterval overrides the bounded wait of the completion queue drain.
func WithPollInterval(interval time.Duration) Option {
	return func(o *orchestratorOptions) {
		if interval > 0 {
			o.pollInterval = interval
		}
	}
}

// NewOrchestrator creates an orchestrator over the given pipeline, moderation
// gate and suggestion source.
func NewOrchestrator(pipeline TaskPipeline, gate ModerationGate, suggestions SuggestionSource, opts ...Option) *Orchestrator {
	options := orchestratorOptions{
		logger:       logrus.StandardLogger(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Orchestrator{
		pipeline:     pipeline,
		gate:         gate,
		suggestions:  suggestions,
		logger:       options.logger,
		pollInterval: options.pollInterval,
	}
}

// pipelineRunState is written exactly once by the worker goroutine before it
// signals completion, and read by the orchestrator only after that signal.
type pipelineRunState struct {
	outputs []StageOutput
	err     error
}

// Run produces the snapshot sequence for one dialogue. The returned channel
// is unbuffered (the consumer controls pacing) and is closed once the run
// reaches a terminal state; the pipeline worker is always joined before then.
// No snapshot is ever retried or re-emitted; a run cannot be resumed.
func (o *Orchestrator) Run(ctx context.Context, req Request) <-chan Snapshot {
	out := make(chan Snapshot)
	go o.run(ctx, req, out)
	return out
}

func (o *Orchestrator) run(ctx context.Context, req Request, out chan<- Snapshot) {
	defer close(out)

	start := time.Now()
	topic := strings.TrimSpace(req.Topic)
	log := o.logger.WithFields(logrus.Fields{
		"topic_length": len(topic),
		"ai_choice":    topic == "",
	})

	completed := 0
	emit := func(snap Snapshot) bool {
		snap.Progress = Progress{
			CompletedStages: completed,
			ElapsedSeconds:  time.Since(start).Seconds(),
		}
		select {
		case out <- snap:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// Empty topics always pass without consulting the gate.
	if topic != "" {
		approved, reason := o.gate.Check(ctx, topic)
		if !approved {
			log.WithField("reason", reason).Info("topic rejected by moderation")
			suggestions := o.suggestions.Suggest(topic)
			if len(suggestions) > MaxSuggestions {
				suggestions = suggestions[:MaxSuggestions]
			}
			emit(uniformSnapshot(rejectionMessage(reason, suggestions), Progress{}))
			return
		}
	}

	working := waitingSnapshot()
	if !emit(working) {
		return
	}

	log.Info("dialogue pipeline starting")

	// Worker enqueues, orchestrator dequeues; the buffer means the worker is
	// never throttled by a slow consumer.
	completions := make(chan StageOutput, StageCount)
	workerDone := make(chan struct{})
	var state pipelineRunState

	go func() {
		defer close(workerDone)
		defer func() {
			if r := recover(); r != nil {
				state.err = fmt.Errorf("pipeline panic: %v", r)
			}
		}()
		state.outputs, state.err = o.pipeline.Run(ctx, Inputs{
			Topic:       topic,
			CurrentYear: req.YearContext,
		}, func(so StageOutput) {
			completions <- so
		})
	}()

	next := StageTopicProposal
	handleCompletion := func(so StageOutput) bool {
		if next > StageJudgment {
			return true
		}
		// Completions arrive in pipeline order, so the payload is attributed
		// to the next expected stage by position, never by inspecting it.
		applyStage(&working, next, so.Result)
		next++
		completed = int(next)
		return emit(working)
	}

	alive := true
	cancelled := false
	for alive {
		select {
		case so := <-completions:
			if !handleCompletion(so) {
				cancelled = true
				alive = false
			}
		case <-workerDone:
			alive = false
		case <-ctx.Done():
			cancelled = true
			alive = false
		case <-time.After(o.pollInterval):
			// Dequeue timed out; poll again.
		}
	}

	// Join the worker before reading its run state.
	<-workerDone
	if cancelled {
		log.Info("dialogue run cancelled")
		return
	}

	// Drain completions the worker enqueued after the loop observed it done.
	for {
		select {
		case so := <-completions:
			if !handleCompletion(so) {
				return
			}
			continue
		default:
		}
		break
	}

	if state.err != nil {
		log.WithError(state.err).Error("dialogue pipeline failed")
		emit(uniformSnapshot(failureMessage(state.err), Progress{}))
		return
	}

	// Reconcile against the pipeline's authoritative outputs: the queue-driven
	// snapshots are best-effort interim progress and may have missed a stage.
	for _, so := range state.outputs {
		setField(&working, so.Stage, renderStage(so.Stage, so.Result))
	}
	completed = StageCount
	log.WithField("elapsed", time.Since(start).Seconds()).Info("dialogue pipeline complete")
	emit(working)
}
