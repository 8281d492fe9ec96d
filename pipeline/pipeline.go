// Package pipeline runs the four Socratic dialogue stages in order against an
// eino chat model, producing structured output per stage via forced tool
// calls with a raw-text fallback.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	sofa "github.com/darth-dodo/socratic-sofa"
	"github.com/darth-dodo/socratic-sofa/schemas"
)

// stageSpec is the declarative description of one dialogue stage.
type stageSpec struct {
	stage     sofa.Stage
	system    string
	buildUser func(in sofa.Inputs, prior []sofa.StageOutput) string
	toolInfo  *schema.ToolInfo
	decode    func(arguments string) (schemas.StageResult, error)
}

// Pipeline executes the dialogue stages sequentially. A Pipeline is stateless
// across runs and safe for concurrent Run calls.
type Pipeline struct {
	chatModel model.ToolCallingChatModel
	logger    *logrus.Logger
	stages    []stageSpec
}

type pipelineOptions struct {
	logger *logrus.Logger
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

// WithLogger sets the logger used for stage-level events.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *pipelineOptions) {
		o.logger = logger
	}
}

// New builds the four-stage dialogue pipeline over the given chat model.
func New(chatModel model.ToolCallingChatModel, opts ...Option) (*Pipeline, error) {
	options := pipelineOptions{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	stages, err := buildStages()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		chatModel: chatModel,
		logger:    options.logger,
		stages:    stages,
	}, nil
}

func buildStages() ([]stageSpec, error) {
	topicTool, err := utils.GoStruct2ToolInfo[schemas.TopicOutput](
		"propose_topic",
		"Record the philosophical topic chosen for the dialogue, with context and key concepts.",
	)
	if err != nil {
		return nil, fmt.Errorf("build topic tool info: %w", err)
	}
	inquiryTool, err := utils.GoStruct2ToolInfo[schemas.InquiryOutput](
		"record_inquiry",
		"Record a complete Socratic line of inquiry: angle, opening statement, questions and insight.",
	)
	if err != nil {
		return nil, fmt.Errorf("build inquiry tool info: %w", err)
	}
	judgmentTool, err := utils.GoStruct2ToolInfo[schemas.JudgmentOutput](
		"record_judgment",
		"Record the dialectic evaluation of both lines of inquiry with per-criterion scores.",
	)
	if err != nil {
		return nil, fmt.Errorf("build judgment tool info: %w", err)
	}

	return []stageSpec{
		{
			stage:     sofa.StageTopicProposal,
			system:    socraticPhilosopherPrompt,
			buildUser: buildTopicPrompt,
			toolInfo:  topicTool,
			decode:    schemas.DecodeTopic,
		},
		{
			stage:     sofa.StageFirstInquiry,
			system:    socraticPhilosopherPrompt,
			buildUser: buildFirstInquiryPrompt,
			toolInfo:  inquiryTool,
			decode:    schemas.DecodeInquiry,
		},
		{
			stage:     sofa.StageSecondInquiry,
			system:    socraticPhilosopherPrompt,
			buildUser: buildSecondInquiryPrompt,
			toolInfo:  inquiryTool,
			decode:    schemas.DecodeInquiry,
		},
		{
			stage:     sofa.StageJudgment,
			system:    dialecticModeratorPrompt,
			buildUser: buildJudgmentPrompt,
			toolInfo:  judgmentTool,
			decode:    schemas.DecodeJudgment,
		},
	}, nil
}

// Run implements sofa.TaskPipeline.
func (p *Pipeline) Run(ctx context.Context, in sofa.Inputs, onStage func(sofa.StageOutput)) ([]sofa.StageOutput, error) {
	outputs := make([]sofa.StageOutput, 0, len(p.stages))
	for _, st := range p.stages {
		result, err := p.runStage(ctx, st, in, outputs)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.stage, err)
		}
		so := sofa.StageOutput{Stage: st.stage, Result: result}
		outputs = append(outputs, so)
		if onStage != nil {
			onStage(so)
		}
	}
	return outputs, nil
}

func (p *Pipeline) runStage(ctx context.Context, st stageSpec, in sofa.Inputs, prior []sofa.StageOutput) (schemas.StageResult, error) {
	messages := []*schema.Message{
		schema.SystemMessage(st.system),
		schema.UserMessage(st.buildUser(in, prior)),
	}

	response, err := p.chatModel.Generate(ctx, messages,
		model.WithTools([]*schema.ToolInfo{st.toolInfo}),
		model.WithToolChoice(schema.ToolChoiceForced, st.toolInfo.Name),
	)
	if err != nil {
		return schemas.StageResult{}, fmt.Errorf("LLM call failed: %w", err)
	}

	if len(response.ToolCalls) == 0 {
		p.logger.WithField("stage", st.stage.String()).Debug("no tool call in response, using raw content")
		return schemas.RawResult(response.Content), nil
	}

	result, err := st.decode(response.ToolCalls[0].Function.Arguments)
	if err != nil {
		// Structured shape unavailable; degrade to raw text rather than fail.
		p.logger.WithFields(logrus.Fields{
			"stage": st.stage.String(),
			"error": err.Error(),
		}).Debug("tool arguments undecodable, using raw content")
		return schemas.RawResult(rawFallbackText(response)), nil
	}
	return result, nil
}

// rawFallbackText picks the best plain text available from a response whose
// tool call could not be decoded.
func rawFallbackText(response *schema.Message) string {
	if response.Content != "" {
		return response.Content
	}
	return response.ToolCalls[0].Function.Arguments
}
