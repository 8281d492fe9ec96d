// Package sofa orchestrates a four-stage Socratic dialogue pipeline and
// streams its progress as immutable snapshots.
package sofa

import (
	"context"

	"github.com/darth-dodo/socratic-sofa/schemas"
)

// Stage identifies one of the four ordered dialogue stages. The numeric order
// is both the pipeline execution order and the display progress order.
type Stage int

const (
	StageTopicProposal Stage = iota
	StageFirstInquiry
	StageSecondInquiry
	StageJudgment
)

// StageCount is the number of dialogue stages.
const StageCount = 4

func (s Stage) String() string {
	switch s {
	case StageTopicProposal:
		return "topic_proposal"
	case StageFirstInquiry:
		return "first_inquiry"
	case StageSecondInquiry:
		return "second_inquiry"
	case StageJudgment:
		return "judgment"
	default:
		return "unknown"
	}
}

// Request describes one dialogue run. An empty Topic means the pipeline
// chooses the topic itself.
type Request struct {
	Topic       string
	YearContext string
}

// Progress carries how far a run has advanced.
type Progress struct {
	CompletedStages int     `json:"completed_stages"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
}

// Snapshot is one rendering of dialogue progress. Each text field is either a
// waiting/in-progress marker, an error message, or fully formatted output.
type Snapshot struct {
	Progress      Progress `json:"progress"`
	Topic         string   `json:"topic"`
	FirstInquiry  string   `json:"first_inquiry"`
	SecondInquiry string   `json:"second_inquiry"`
	Judgment      string   `json:"judgment"`
}

// StageOutput is the result of one completed pipeline stage.
type StageOutput struct {
	Stage  Stage
	Result schemas.StageResult
}

// Inputs are the variables handed to the task pipeline.
type Inputs struct {
	Topic       string
	CurrentYear string
}

// TaskPipeline runs the four dialogue stages in order, invoking onStage after
// each completion, and returns the ordered authoritative per-stage outputs.
// Run blocks until the pipeline finishes or fails; it is called on a worker
// goroutine owned by the orchestrator.
type TaskPipeline interface {
	Run(ctx context.Context, in Inputs, onStage func(StageOutput)) ([]StageOutput, error)
}

// ModerationGate decides whether a topic may proceed. Implementations fail
// open: internal errors yield an approval, never an error to the caller.
type ModerationGate interface {
	Check(ctx context.Context, topic string) (approved bool, reason string)
}

// SuggestionSource provides alternative topics for a rejected one.
type SuggestionSource interface {
	Suggest(rejectedTopic string) []string
}
