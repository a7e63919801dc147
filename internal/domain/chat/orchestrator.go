package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/utils/idgen"
	"koita-chat-api/internal/utils/platformerrors"
	"koita-chat-api/internal/utils/stringutils"
)

const persistTimeout = 10 * time.Second

// Orchestrator runs the send-message flow: resolve the conversation, record the
// user turn, build bounded context, relay the streamed reply and persist it.
type Orchestrator struct {
	conversations conversation.Repository
	settings      SettingsProvider
	model         ModelGateway
	search        search.Provider
	locker        Locker
	log           zerolog.Logger
}

func NewOrchestrator(
	conversations conversation.Repository,
	settings SettingsProvider,
	model ModelGateway,
	searchProvider search.Provider,
	locker Locker,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		conversations: conversations,
		settings:      settings,
		model:         model,
		search:        searchProvider,
		locker:        locker,
		log:           log.With().Str("component", "chat-orchestrator").Logger(),
	}
}

// Send handles one chat turn. Errors returned by Send happened before anything was
// written to the sink; failures after the stream started are reported on the sink
// and flagged with SendResult.Interrupted. When ctx ends before the first token the
// bare context error is returned.
func (o *Orchestrator) Send(ctx context.Context, in SendInput, sink EventSink) (*SendResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			MsgMissingMessage, nil, "2b4d6f80-a1c3-4e5f-8b7d-9f1a3c5e7b02")
	}

	conv, created, err := o.resolveConversation(ctx, in)
	if err != nil {
		return nil, err
	}

	unlock, err := o.locker.Lock(ctx, "conversation:"+conv.ID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to acquire conversation lock")
	}
	defer unlock()

	if _, err := o.appendMessage(ctx, conv.ID, conversation.RoleUser, in.Message); err != nil {
		return nil, err
	}

	history, err := o.conversations.RecentMessages(ctx, conv.ID, HistoryLimit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}

	messages := o.buildContext(ctx, in, history)

	settings, err := o.settings.Get(ctx, in.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load model preferences")
	}
	opts := settings.ModelOptions()

	result := &SendResult{ConversationID: conv.ID, Created: created, Model: opts.Model}

	started := false
	start := func() error {
		if started {
			return nil
		}
		if err := sink.Start(); err != nil {
			return err
		}
		started = true
		return sink.Send(Event{Type: EventConversation, ConversationID: conv.ID})
	}

	reply, streamErr := o.model.StreamChatCompletion(ctx, messages, opts, func(delta string) error {
		if err := start(); err != nil {
			return err
		}
		return sink.Send(Event{Type: EventChunk, Content: delta})
	})
	result.Reply = reply

	if streamErr != nil && !started {
		if ctxErr := ctx.Err(); ctxErr != nil {
			o.log.Debug().Str("conversation_id", conv.ID).Msg("client went away before the first token")
			return nil, ctxErr
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, streamErr, "model stream failed")
	}

	// the caller may be gone; the transcript is still saved
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if streamErr != nil {
		result.Interrupted = true
		o.log.Error().Err(streamErr).
			Str("conversation_id", conv.ID).
			Int("partial_length", len(reply)).
			Msg("model stream interrupted")
		if reply != "" {
			o.persistReply(persistCtx, conv.ID, created, reply)
		}
		if ctx.Err() == nil {
			_ = sink.Send(Event{Type: EventError, Content: MsgGenerationFailed})
		}
		return result, nil
	}

	if err := start(); err != nil {
		o.log.Warn().Err(err).Str("conversation_id", conv.ID).Msg("unable to open stream for empty reply")
	}

	o.persistReply(persistCtx, conv.ID, created, reply)

	if err := sink.Send(Event{Type: EventDone, ConversationID: conv.ID}); err != nil {
		o.log.Debug().Err(err).Str("conversation_id", conv.ID).Msg("client went away before done event")
	}

	return result, nil
}

// TempChat answers a single message with default options without touching the store.
func (o *Orchestrator) TempChat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			MsgMissingMessage, nil, "6d8f0a2c-e3b5-4d7f-9a1c-3e5a7c9e1f46")
	}

	var defaults *usersettings.UserSettings
	completion, err := o.model.ChatCompletion(ctx, []Message{{Role: conversation.RoleUser, Content: message}}, defaults.ModelOptions())
	if err != nil {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"temporary chat completion failed", err, "8f0a2c4e-5b7d-4f9a-8c3e-5a7c9e1b3d68",
			map[string]any{platformerrors.PublicMessageKey: MsgGenerationFailed})
	}
	return completion.Content, nil
}

func (o *Orchestrator) resolveConversation(ctx context.Context, in SendInput) (*conversation.Conversation, bool, error) {
	if in.ConversationID != "" {
		conv, err := o.conversations.FindByIDForUser(ctx, in.ConversationID, in.UserID)
		if err != nil {
			return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
		}
		if conv == nil {
			return nil, false, conversation.NotFoundError(ctx)
		}
		return conv, false, nil
	}

	id, err := idgen.NewConversationID()
	if err != nil {
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate conversation id", err, "0a2c4e6f-7d9b-4f1a-8e5c-7c9e1b3d5f80")
	}

	conv, err := o.conversations.Create(ctx, &conversation.Conversation{
		ID:     id,
		UserID: in.UserID,
		Title:  stringutils.ConversationTitle(in.Message),
		IsTemp: in.IsTemp,
	})
	if err != nil {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, true, nil
}

func (o *Orchestrator) buildContext(ctx context.Context, in SendInput, history []conversation.Message) []Message {
	messages := make([]Message, 0, len(history)+1)

	if in.UseWebSearch && o.search != nil {
		result := o.search.Search(ctx, in.Message)
		if result.Success && result.ContextText != "" {
			messages = append(messages, Message{
				Role:    conversation.RoleSystem,
				Content: WebContextPrefix + result.ContextText,
			})
		} else {
			o.log.Warn().
				Str("provider", o.search.Name()).
				Str("reason", result.Error).
				Msg("web search unavailable, continuing without context")
		}
	}

	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

func (o *Orchestrator) appendMessage(ctx context.Context, conversationID string, role conversation.Role, content string) (*conversation.Message, error) {
	id, err := idgen.NewMessageID()
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate message id", err, "1b3d5f7a-8e0c-4a2b-9f6d-8d0f2c4e6a91")
	}

	msg, err := o.conversations.AppendMessage(ctx, &conversation.Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to save message")
	}
	return msg, nil
}

func (o *Orchestrator) persistReply(ctx context.Context, conversationID string, created bool, reply string) {
	if _, err := o.appendMessage(ctx, conversationID, conversation.RoleAssistant, reply); err != nil {
		o.log.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to save assistant reply")
		return
	}

	if created && reply != "" {
		if title := stringutils.ReplyTitle(reply); title != "" {
			if err := o.conversations.UpdateTitle(ctx, conversationID, title); err != nil {
				o.log.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to backfill conversation title")
			}
		}
	}

	if err := o.conversations.Touch(ctx, conversationID, time.Now().UTC()); err != nil {
		o.log.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to bump conversation timestamp")
	}
}
