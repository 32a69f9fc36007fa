// Package openrouter provides the chat completion client for the OpenRouter
// API, spoken through its OpenAI-compatible surface.
package openrouter

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"orproxy/domain"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client calls the OpenRouter chat completion API.
type Client struct {
	client openai.Client
}

// NewClient creates an OpenRouter client. siteURL and siteName are optional:
// when set they are sent as the HTTP-Referer and X-Title headers used for
// OpenRouter rankings. Extra request options are applied last, so tests can
// override the base URL or the retry policy.
func NewClient(apiKey, siteURL, siteName string, opts ...option.RequestOption) *Client {
	options := []option.RequestOption{
		option.WithBaseURL(DefaultBaseURL),
		option.WithAPIKey(apiKey),
	}
	if siteURL != "" {
		options = append(options, option.WithHeader("HTTP-Referer", siteURL))
	}
	if siteName != "" {
		options = append(options, option.WithHeader("X-Title", siteName))
	}
	options = append(options, opts...)

	return &Client{
		client: openai.NewClient(options...),
	}
}

// Complete sends the conversation history followed by the new user message
// to the model and returns the assistant's reply. Failures are returned as
// *Error with the kind decided here.
func (c *Client) Complete(ctx context.Context, model string, history []domain.HistoryMessage, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(strings.TrimSpace(message)))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	})
	if err != nil {
		return "", classify(err, model)
	}

	if len(completion.Choices) == 0 {
		return "", &Error{Kind: ErrorKindUnknown, Message: "no response received from upstream"}
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", &Error{Kind: ErrorKindUnknown, Message: "empty response received from upstream"}
	}

	return content, nil
}
