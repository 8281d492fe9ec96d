package sofa

import (
	"fmt"
	"strings"

	"github.com/darth-dodo/socratic-sofa/schemas"
)

// Waiting placeholders shown before a stage has produced anything.
const (
	waitingTopic         = "⏳ *Preparing philosophical inquiry...*"
	waitingFirstInquiry  = "⏳ *Waiting for topic selection...*"
	waitingSecondInquiry = "⏳ *Waiting for first inquiry...*"
	waitingJudgment      = "⏳ *Waiting for dialogues to complete...*"
)

// In-progress markers set on the next stage when its predecessor completes.
const (
	progressFirstInquiry  = "🔄 *First line of inquiry in progress...*"
	progressSecondInquiry = "🔄 *Alternative inquiry in progress...*"
	progressJudgment      = "🔄 *Evaluating dialogues...*"
)

const (
	firstInquiryHeader  = "## 🔵 First Line of Inquiry\n\n"
	secondInquiryHeader = "## 🟢 Alternative Line of Inquiry\n\n"
)

// renderStage formats one stage's result for display. Structured output is
// preferred; anything else falls back to the raw text.
func renderStage(stage Stage, result schemas.StageResult) string {
	switch stage {
	case StageTopicProposal:
		if result.Topic != nil {
			return schemas.FormatTopic(*result.Topic)
		}
		return result.Raw
	case StageFirstInquiry:
		if result.Inquiry != nil {
			return schemas.FormatInquiry(*result.Inquiry, "First Line of Inquiry", "🔵")
		}
		return firstInquiryHeader + result.Raw
	case StageSecondInquiry:
		if result.Inquiry != nil {
			return schemas.FormatInquiry(*result.Inquiry, "Alternative Line of Inquiry", "🟢")
		}
		return secondInquiryHeader + result.Raw
	case StageJudgment:
		if result.Judgment != nil {
			return schemas.FormatJudgment(*result.Judgment)
		}
		return result.Raw
	default:
		return result.Raw
	}
}

// applyStage writes a completed stage's text into the working snapshot and
// advances the following stage's placeholder to an in-progress marker.
func applyStage(snap *Snapshot, stage Stage, result schemas.StageResult) {
	switch stage {
	case StageTopicProposal:
		snap.Topic = renderStage(stage, result)
		snap.FirstInquiry = progressFirstInquiry
	case StageFirstInquiry:
		snap.FirstInquiry = renderStage(stage, result)
		snap.SecondInquiry = progressSecondInquiry
	case StageSecondInquiry:
		snap.SecondInquiry = renderStage(stage, result)
		snap.Judgment = progressJudgment
	case StageJudgment:
		snap.Judgment = renderStage(stage, result)
	}
}

// setField writes a stage's text without touching in-progress markers; used
// during final reconciliation.
func setField(snap *Snapshot, stage Stage, text string) {
	switch stage {
	case StageTopicProposal:
		snap.Topic = text
	case StageFirstInquiry:
		snap.FirstInquiry = text
	case StageSecondInquiry:
		snap.SecondInquiry = text
	case StageJudgment:
		snap.Judgment = text
	}
}

func waitingSnapshot() Snapshot {
	return Snapshot{
		Topic:         waitingTopic,
		FirstInquiry:  waitingFirstInquiry,
		SecondInquiry: waitingSecondInquiry,
		Judgment:      waitingJudgment,
	}
}

// uniformSnapshot sets all four fields to the same message.
func uniformSnapshot(message string, progress Progress) Snapshot {
	return Snapshot{
		Progress:      progress,
		Topic:         message,
		FirstInquiry:  message,
		SecondInquiry: message,
		Judgment:      message,
	}
}

// rejectionMessage builds the message shown when moderation rejects a topic.
func rejectionMessage(reason string, suggestions []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ %s\n\n", reason)
	sb.WriteString("**Suggested topics:**\n")
	for _, suggestion := range suggestions {
		fmt.Fprintf(&sb, "- %s\n", suggestion)
	}
	return sb.String()
}

// failureMessage builds the terminal error message for a failed pipeline run.
func failureMessage(err error) string {
	return fmt.Sprintf("❌ Error running dialogue: %v", err)
}
