package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/usersettings"
	chatclient "koita-chat-api/internal/utils/httpclients/chat"
)

func TestBuildRequestMapsRolesAndOptions(t *testing.T) {
	req := buildRequest([]chat.Message{
		{Role: conversation.RoleSystem, Content: "ctx"},
		{Role: conversation.RoleUser, Content: "Bonjour"},
	}, usersettings.ModelOptions{Model: "mistral-small", Temperature: 0.3, MaxTokens: 100})

	assert.Equal(t, "mistral-small", req.Model)
	assert.InDelta(t, 0.3, req.Temperature, 1e-6)
	assert.Equal(t, 100, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
}

func TestStreamChatCompletionRelaysDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral-medium", req.Model)
		assert.Equal(t, 2000, req.MaxTokens)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Bon\"}}]}\n\n" +
			"data: {\"choices\":[{\"delta\":{\"content\":\"jour\"}}]}\n\n" +
			"data: [DONE]\n\n"))
	}))
	defer server.Close()

	gateway := NewMistralGateway(chatclient.NewChatCompletionClient(resty.New(), "mistral", server.URL, "key"))

	var deltas []string
	var defaults *usersettings.UserSettings
	content, err := gateway.StreamChatCompletion(context.Background(),
		[]chat.Message{{Role: conversation.RoleUser, Content: "Salut"}},
		defaults.ModelOptions(),
		func(delta string) error {
			deltas = append(deltas, delta)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "Bonjour", content)
	assert.Equal(t, []string{"Bon", "jour"}, deltas)
}

func TestChatCompletionWithoutChoicesFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	gateway := NewMistralGateway(chatclient.NewChatCompletionClient(resty.New(), "mistral", server.URL, "key"))
	_, err := gateway.ChatCompletion(context.Background(), []chat.Message{{Role: conversation.RoleUser, Content: "x"}}, usersettings.ModelOptions{Model: "m"})
	require.Error(t, err)
}
