package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"koita-chat-api/internal/infrastructure/logger"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	dataPrefix           = "data:"
	doneMarker           = "[DONE]"
	scannerInitialBuffer = 12 * 1024        // 12KB
	scannerMaxBuffer     = 10 * 1024 * 1024 // 10MB
	maxLoggedBodyLength  = 2048

	// PublicErrorMessage is what clients see for any provider failure.
	PublicErrorMessage = "Erreur de communication avec Mistral AI"
)

// DeltaHandler receives each non-empty content delta.
type DeltaHandler func(delta string) error

type ChoiceDelta struct {
	Content string `json:"content"`
}

type StreamChoice struct {
	Delta        ChoiceDelta `json:"delta"`
	FinishReason string      `json:"finish_reason"`
}

type StreamChunk struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

// ChatCompletionClient speaks the OpenAI-compatible chat completions protocol.
type ChatCompletionClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	name    string
}

func NewChatCompletionClient(client *resty.Client, name, baseURL, apiKey string) *ChatCompletionClient {
	return &ChatCompletionClient{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
		name:    name,
	}
}

func (c *ChatCompletionClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	request.Stream = false

	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, c.transportError(ctx, err, "chat completion request failed")
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp.StatusCode(), resp.String(), "chat completion request failed")
	}
	return &respBody, nil
}

// StreamChatCompletion posts a streaming request and hands every content delta to onDelta.
// It returns the accumulated content, also when it fails midway.
func (c *ChatCompletionClient) StreamChatCompletion(ctx context.Context, request openai.ChatCompletionRequest, onDelta DeltaHandler) (string, error) {
	request.Stream = true

	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream").
		SetHeader("Accept-Encoding", "identity").
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return "", c.transportError(ctx, err, "streaming request failed")
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"streaming request failed: empty response body", nil, "1b3ab461-dbf9-4034-8abb-dfc6ea8486c5", publicContext(nil))
	}
	body := resp.RawResponse.Body
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			log := logger.GetLogger()
			log.Error().Err(closeErr).Str("client", c.name).Msg("unable to close response body")
		}
	}()

	if resp.IsError() {
		raw, _ := io.ReadAll(io.LimitReader(body, maxLoggedBodyLength))
		return "", c.errorFromResponse(ctx, resp.StatusCode(), string(raw), "streaming request failed")
	}

	return c.readStream(ctx, body, onDelta)
}

// readStream consumes an SSE body line by line. The scanner keeps an incomplete trailing
// line buffered until the rest of it arrives, so frames split across reads are not lost.
func (c *ChatCompletionClient) readStream(ctx context.Context, body io.Reader, onDelta DeltaHandler) (string, error) {
	log := logger.GetLogger()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

	var content strings.Builder
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return content.String(), err
		}

		line := strings.TrimSpace(scanner.Text())
		data, found := strings.CutPrefix(line, dataPrefix)
		if !found {
			continue
		}
		data = strings.TrimSpace(data)
		if data == doneMarker {
			return content.String(), nil
		}
		if data == "" {
			continue
		}

		var chunk StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			log.Warn().Err(err).Str("client", c.name).Msg("skipping malformed stream chunk")
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		content.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return content.String(), err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return content.String(), ctxErr
		}
		return content.String(), c.transportError(ctx, err, "stream read failed")
	}

	// the provider closed the body without [DONE]; keep what arrived
	return content.String(), nil
}

func (c *ChatCompletionClient) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *ChatCompletionClient) endpoint(path string) string {
	if c.baseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *ChatCompletionClient) transportError(ctx context.Context, err error, message string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		message, err, "3476dd55-5fc0-4653-bd10-665895ecc099", publicContext(map[string]any{"client": c.name}))
}

// errorFromResponse keeps the provider body in the server log only.
func (c *ChatCompletionClient) errorFromResponse(ctx context.Context, status int, body, message string) error {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) > maxLoggedBodyLength {
		trimmed = trimmed[:maxLoggedBodyLength]
	}

	log := logger.GetLogger()
	log.Error().
		Str("client", c.name).
		Int("status", status).
		Str("body", trimmed).
		Msg("provider returned an error")

	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: status %d", message, status), nil, "a1f46e0d-4017-4411-ac05-987946c3066d",
		publicContext(map[string]any{"client": c.name, "status": status}))
}

func publicContext(fields map[string]any) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields[platformerrors.PublicMessageKey] = PublicErrorMessage
	return fields
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
