package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	response string
	err      error
	input    *bedrockruntime.InvokeModelInput
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.response)}, nil
}

func TestBedrockGenerate(t *testing.T) {
	fake := &fakeInvoker{response: `{"content":[{"text":"- answer line"}]}`}
	b := &Bedrock{client: fake, modelID: "anthropic.claude-3-sonnet-20240229-v1:0"}

	text, err := b.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "- answer line", text)

	require.NotNil(t, fake.input)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", aws.ToString(fake.input.ModelId))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))

	var req bedrockRequest
	require.NoError(t, json.Unmarshal(fake.input.Body, &req))
	assert.Equal(t, anthropicVersion, req.AnthropicVersion)
	assert.Equal(t, MaxOutputTokens, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "the prompt", req.Messages[0].Content)
}

func TestBedrockGenerateTransportError(t *testing.T) {
	fake := &fakeInvoker{err: errors.New("throttled")}
	b := &Bedrock{client: fake, modelID: "m"}

	_, err := b.Generate(context.Background(), "p")
	assert.ErrorContains(t, err, "invoke model")
}

func TestBedrockGenerateMalformedResponse(t *testing.T) {
	fake := &fakeInvoker{response: `not json`}
	b := &Bedrock{client: fake, modelID: "m"}

	_, err := b.Generate(context.Background(), "p")
	assert.ErrorContains(t, err, "decode response")
}

func TestBedrockGenerateEmptyContent(t *testing.T) {
	fake := &fakeInvoker{response: `{"content":[]}`}
	b := &Bedrock{client: fake, modelID: "m"}

	_, err := b.Generate(context.Background(), "p")
	assert.ErrorContains(t, err, "empty response")
}
