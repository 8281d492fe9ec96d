// Package schemas defines the structured outputs produced by the four
// dialogue stages, plus their markdown rendering. The struct tags double as
// the JSON Schema handed to the model as a forced tool call.
package schemas

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// TopicOutput is the structured result of the topic proposal stage.
type TopicOutput struct {
	Topic       string   `json:"topic" jsonschema:"required,description=The philosophical topic or question for the dialogue"`
	Context     string   `json:"context" jsonschema:"required,description=Brief context explaining why this topic is philosophically significant"`
	KeyConcepts []string `json:"key_concepts" jsonschema:"required,minItems=2,maxItems=4,description=2-4 key philosophical concepts this topic will explore"`
}

// SocraticQuestion is a single question with the purpose it serves.
type SocraticQuestion struct {
	Question string `json:"question" jsonschema:"required,description=The Socratic question itself"`
	Purpose  string `json:"purpose" jsonschema:"required,description=Brief explanation of what this question aims to reveal or challenge"`
}

// InquiryOutput is the structured result of an inquiry stage.
type InquiryOutput struct {
	PhilosophicalAngle string             `json:"philosophical_angle" jsonschema:"required,description=The specific philosophical perspective or angle being explored"`
	OpeningStatement   string             `json:"opening_statement" jsonschema:"required,description=A brief statement framing the inquiry approach"`
	Questions          []SocraticQuestion `json:"questions" jsonschema:"required,minItems=5,maxItems=7,description=5-7 carefully crafted Socratic questions"`
	InsightSummary     string             `json:"insight_summary" jsonschema:"required,description=A brief summary of the philosophical tensions or insights revealed"`
}

// CriterionScore scores one evaluation criterion.
type CriterionScore struct {
	Score      int    `json:"score" jsonschema:"required,minimum=1,maximum=5,description=Score from 1-5"`
	Assessment string `json:"assessment" jsonschema:"required,description=Brief assessment explaining the score"`
}

// InquiryEvaluation is the judge's assessment of a single inquiry.
type InquiryEvaluation struct {
	QuestionQuality       CriterionScore `json:"question_quality" jsonschema:"required,description=Whether questions genuinely probe or merely lead"`
	ElencticEffectiveness CriterionScore `json:"elenctic_effectiveness" jsonschema:"required,description=How well contradictions are revealed"`
	PhilosophicalInsight  CriterionScore `json:"philosophical_insight" jsonschema:"required,description=Depth and significance of insights"`
	SocraticFidelity      CriterionScore `json:"socratic_fidelity" jsonschema:"required,description=Adherence to genuine Socratic method"`
}

// JudgmentOutput is the structured result of the judgment stage.
type JudgmentOutput struct {
	FirstInquiry              InquiryEvaluation `json:"first_inquiry" jsonschema:"required,description=Evaluation of the first line of inquiry"`
	SecondInquiry             InquiryEvaluation `json:"second_inquiry" jsonschema:"required,description=Evaluation of the second/alternative line of inquiry"`
	DifferentiationScore      int               `json:"differentiation_score" jsonschema:"required,minimum=0,maximum=10,description=Bonus score (0-10) for how distinct the second inquiry is from the first"`
	DifferentiationAssessment string            `json:"differentiation_assessment" jsonschema:"required,description=Assessment of how the second inquiry differentiates from the first"`
	Winner                    string            `json:"winner" jsonschema:"required,description=Which inquiry was more effective: 'First'_'Second' or 'Both equally effective'"`
	SocraticExemplification   string            `json:"socratic_exemplification" jsonschema:"required,description=Which inquiry better exemplifies the Socratic method and why"`
	Recommendation            string            `json:"recommendation" jsonschema:"required,description=One-sentence suggestion for deepening the Socratic examination"`
}

// StageResult is a tagged variant holding either one structured stage output
// or the model's raw text when the structured shape was unavailable. At most
// one of the structured fields is set.
type StageResult struct {
	Topic    *TopicOutput
	Inquiry  *InquiryOutput
	Judgment *JudgmentOutput
	Raw      string
}

// RawResult wraps plain text in a StageResult.
func RawResult(text string) StageResult {
	return StageResult{Raw: text}
}

// IsStructured reports whether any structured field is set.
func (r StageResult) IsStructured() bool {
	return r.Topic != nil || r.Inquiry != nil || r.Judgment != nil
}

// DecodeTopic parses tool-call arguments into a topic result.
func DecodeTopic(arguments string) (StageResult, error) {
	var out TopicOutput
	if err := sonic.UnmarshalString(arguments, &out); err != nil {
		return StageResult{}, fmt.Errorf("parse topic output: %w", err)
	}
	return StageResult{Topic: &out}, nil
}

// DecodeInquiry parses tool-call arguments into an inquiry result.
func DecodeInquiry(arguments string) (StageResult, error) {
	var out InquiryOutput
	if err := sonic.UnmarshalString(arguments, &out); err != nil {
		return StageResult{}, fmt.Errorf("parse inquiry output: %w", err)
	}
	return StageResult{Inquiry: &out}, nil
}

// DecodeJudgment parses tool-call arguments into a judgment result.
func DecodeJudgment(arguments string) (StageResult, error) {
	var out JudgmentOutput
	if err := sonic.UnmarshalString(arguments, &out); err != nil {
		return StageResult{}, fmt.Errorf("parse judgment output: %w", err)
	}
	return StageResult{Judgment: &out}, nil
}
