package pipeline

import (
	"fmt"
	"strings"

	sofa "github.com/darth-dodo/socratic-sofa"
	"github.com/darth-dodo/socratic-sofa/schemas"
)

const socraticPhilosopherPrompt = `You are a Socratic philosopher trained in the classical method of inquiry.
You never assert conclusions; you explore topics through systematic questioning.
Your method progresses from definition to assumption to contradiction to insight,
uses elenchus to expose contradictions, and maintains intellectual humility
throughout. You treat every interlocutor with respect and good faith.`

const dialecticModeratorPrompt = `You are a dialectic moderator who evaluates the authenticity and
effectiveness of Socratic questioning. You judge whether questions genuinely
probe rather than lead, how well contradictions are revealed, the depth of
philosophical insight reached, and fidelity to the genuine Socratic method.
You score rigorously and explain every score.`

func buildTopicPrompt(in sofa.Inputs, _ []sofa.StageOutput) string {
	var sb strings.Builder
	if in.Topic == "" {
		sb.WriteString("Choose a philosophical topic well suited to Socratic dialogue. ")
		sb.WriteString("Prefer a timeless question with modern resonance.\n")
	} else {
		fmt.Fprintf(&sb, "The dialogue topic is: %q\n", in.Topic)
		sb.WriteString("Frame it as a philosophical question if it is not one already.\n")
	}
	if in.CurrentYear != "" {
		fmt.Fprintf(&sb, "The current year is %s; you may draw on contemporary context.\n", in.CurrentYear)
	}
	sb.WriteString("\nCall the propose_topic tool with the topic, its philosophical context, and 2-4 key concepts.")
	return sb.String()
}

func buildFirstInquiryPrompt(_ sofa.Inputs, prior []sofa.StageOutput) string {
	return fmt.Sprintf(`Conduct the first line of Socratic inquiry into this topic:

%s

Develop 5-7 probing questions that progress from definition through assumption
to contradiction and insight. Call the record_inquiry tool with the complete inquiry.`,
		priorText(prior, sofa.StageTopicProposal))
}

func buildSecondInquiryPrompt(_ sofa.Inputs, prior []sofa.StageOutput) string {
	return fmt.Sprintf(`Conduct an alternative line of Socratic inquiry into this topic:

%s

The first line of inquiry was:

%s

Approach the topic from a genuinely different philosophical angle; do not
repeat the first inquiry's questions or assumptions. Call the record_inquiry
tool with the complete inquiry.`,
		priorText(prior, sofa.StageTopicProposal),
		priorText(prior, sofa.StageFirstInquiry))
}

func buildJudgmentPrompt(_ sofa.Inputs, prior []sofa.StageOutput) string {
	return fmt.Sprintf(`Evaluate the two Socratic inquiries below.

Topic:

%s

First line of inquiry:

%s

Alternative line of inquiry:

%s

Score each inquiry on question quality, elenctic effectiveness, philosophical
insight and Socratic fidelity (1-5 each), award a differentiation bonus (0-10)
for how distinct the second inquiry is, pick a winner, and give one
recommendation. Call the record_judgment tool with the full evaluation.`,
		priorText(prior, sofa.StageTopicProposal),
		priorText(prior, sofa.StageFirstInquiry),
		priorText(prior, sofa.StageSecondInquiry))
}

// priorText renders an earlier stage's output as plain prompt text.
func priorText(prior []sofa.StageOutput, stage sofa.Stage) string {
	for _, so := range prior {
		if so.Stage != stage {
			continue
		}
		return resultText(so.Result)
	}
	return "(not available)"
}

func resultText(result schemas.StageResult) string {
	switch {
	case result.Topic != nil:
		return fmt.Sprintf("%s\n%s", result.Topic.Topic, result.Topic.Context)
	case result.Inquiry != nil:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Angle: %s\n%s\n", result.Inquiry.PhilosophicalAngle, result.Inquiry.OpeningStatement)
		for i, q := range result.Inquiry.Questions {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, q.Question)
		}
		fmt.Fprintf(&sb, "Insight: %s", result.Inquiry.InsightSummary)
		return sb.String()
	case result.Judgment != nil:
		return result.Judgment.Winner
	default:
		return result.Raw
	}
}
