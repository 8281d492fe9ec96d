package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sofa "github.com/darth-dodo/socratic-sofa"
)

// fakeChatModel replays canned responses, recording the messages of each call.
type fakeChatModel struct {
	responses []*schema.Message
	errAt     int // call index to fail at, -1 for none
	calls     [][]*schema.Message
}

func newFakeChatModel(responses ...*schema.Message) *fakeChatModel {
	return &fakeChatModel{responses: responses, errAt: -1}
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	call := len(m.calls)
	m.calls = append(m.calls, input)
	if m.errAt == call {
		return nil, errors.New("upstream unavailable")
	}
	if call >= len(m.responses) {
		return nil, fmt.Errorf("unexpected call %d", call)
	}
	return m.responses[call], nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *fakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func toolCallMessage(name, arguments string) *schema.Message {
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{
			{Function: schema.FunctionCall{Name: name, Arguments: arguments}},
		},
	}
}

const (
	topicArgs = `{"topic":"What is justice?","context":"The Republic's opening question.","key_concepts":["justice","virtue"]}`

	inquiryArgs = `{"philosophical_angle":"political philosophy","opening_statement":"Consider the city.",` +
		`"questions":[{"question":"Is justice paying debts?","purpose":"test Cephalus's definition"}],` +
		`"insight_summary":"Justice resists simple definition."}`

	judgmentArgs = `{"first_inquiry":{"question_quality":{"score":4,"assessment":"a"},"elenctic_effectiveness":{"score":4,"assessment":"a"},` +
		`"philosophical_insight":{"score":4,"assessment":"a"},"socratic_fidelity":{"score":4,"assessment":"a"}},` +
		`"second_inquiry":{"question_quality":{"score":5,"assessment":"a"},"elenctic_effectiveness":{"score":5,"assessment":"a"},` +
		`"philosophical_insight":{"score":5,"assessment":"a"},"socratic_fidelity":{"score":5,"assessment":"a"}},` +
		`"differentiation_score":8,"differentiation_assessment":"distinct","winner":"Second",` +
		`"socratic_exemplification":"the second","recommendation":"go deeper"}`
)

func fullRunResponses() []*schema.Message {
	return []*schema.Message{
		toolCallMessage("propose_topic", topicArgs),
		toolCallMessage("record_inquiry", inquiryArgs),
		toolCallMessage("record_inquiry", inquiryArgs),
		toolCallMessage("record_judgment", judgmentArgs),
	}
}

func TestRunProducesFourStagesInOrder(t *testing.T) {
	chatModel := newFakeChatModel(fullRunResponses()...)
	p, err := New(chatModel)
	require.NoError(t, err)

	var seen []sofa.Stage
	outputs, err := p.Run(context.Background(), sofa.Inputs{Topic: "justice"}, func(so sofa.StageOutput) {
		seen = append(seen, so.Stage)
	})
	require.NoError(t, err)
	require.Len(t, outputs, sofa.StageCount)

	want := []sofa.Stage{sofa.StageTopicProposal, sofa.StageFirstInquiry, sofa.StageSecondInquiry, sofa.StageJudgment}
	assert.Equal(t, want, seen)
	for i, so := range outputs {
		assert.Equal(t, want[i], so.Stage)
		assert.True(t, so.Result.IsStructured(), "stage %s should decode", so.Stage)
	}
	assert.Equal(t, "What is justice?", outputs[0].Result.Topic.Topic)
	assert.Equal(t, "Second", outputs[3].Result.Judgment.Winner)
}

func TestRunNilCallbackIsAllowed(t *testing.T) {
	p, err := New(newFakeChatModel(fullRunResponses()...))
	require.NoError(t, err)

	outputs, err := p.Run(context.Background(), sofa.Inputs{}, nil)
	require.NoError(t, err)
	assert.Len(t, outputs, sofa.StageCount)
}

func TestRunLaterPromptsCarryEarlierOutputs(t *testing.T) {
	chatModel := newFakeChatModel(fullRunResponses()...)
	p, err := New(chatModel)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), sofa.Inputs{Topic: "justice", CurrentYear: "2026"}, nil)
	require.NoError(t, err)
	require.Len(t, chatModel.calls, 4)

	topicUser := chatModel.calls[0][1].Content
	assert.Contains(t, topicUser, `"justice"`)
	assert.Contains(t, topicUser, "2026")

	firstUser := chatModel.calls[1][1].Content
	assert.Contains(t, firstUser, "What is justice?")

	secondUser := chatModel.calls[2][1].Content
	assert.Contains(t, secondUser, "Is justice paying debts?")
	assert.Contains(t, secondUser, "different philosophical angle")

	judgeUser := chatModel.calls[3][1].Content
	assert.Contains(t, judgeUser, "What is justice?")
	assert.Contains(t, judgeUser, "record_judgment")
	judgeSystem := chatModel.calls[3][0]
	assert.Equal(t, schema.System, judgeSystem.Role)
	assert.Equal(t, dialecticModeratorPrompt, judgeSystem.Content)
}

func TestRunEmptyTopicAsksModelToChoose(t *testing.T) {
	chatModel := newFakeChatModel(fullRunResponses()...)
	p, err := New(chatModel)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), sofa.Inputs{}, nil)
	require.NoError(t, err)
	assert.Contains(t, chatModel.calls[0][1].Content, "Choose a philosophical topic")
}

func TestRunStopsOnModelError(t *testing.T) {
	chatModel := newFakeChatModel(fullRunResponses()...)
	chatModel.errAt = 2
	p, err := New(chatModel)
	require.NoError(t, err)

	var callbacks int
	outputs, err := p.Run(context.Background(), sofa.Inputs{Topic: "justice"}, func(sofa.StageOutput) {
		callbacks++
	})
	require.Error(t, err)
	assert.Nil(t, outputs)
	assert.Contains(t, err.Error(), "stage second_inquiry")
	assert.Contains(t, err.Error(), "upstream unavailable")
	assert.Equal(t, 2, callbacks)
}

func TestRunStageWithoutToolCallFallsBackToContent(t *testing.T) {
	responses := fullRunResponses()
	responses[0] = &schema.Message{Role: schema.Assistant, Content: "Let us discuss justice."}
	p, err := New(newFakeChatModel(responses...))
	require.NoError(t, err)

	outputs, err := p.Run(context.Background(), sofa.Inputs{Topic: "justice"}, nil)
	require.NoError(t, err)
	assert.False(t, outputs[0].Result.IsStructured())
	assert.Equal(t, "Let us discuss justice.", outputs[0].Result.Raw)
}

func TestRunUndecodableArgumentsFallBackToRaw(t *testing.T) {
	responses := fullRunResponses()
	responses[1] = toolCallMessage("record_inquiry", `{"philosophical_angle": truncated`)
	p, err := New(newFakeChatModel(responses...))
	require.NoError(t, err)

	outputs, err := p.Run(context.Background(), sofa.Inputs{Topic: "justice"}, nil)
	require.NoError(t, err)
	assert.False(t, outputs[1].Result.IsStructured())
	assert.Equal(t, `{"philosophical_angle": truncated`, outputs[1].Result.Raw)
}

func TestPriorTextMissingStage(t *testing.T) {
	assert.Equal(t, "(not available)", priorText(nil, sofa.StageTopicProposal))
}
