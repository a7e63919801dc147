package chat_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/infrastructure/database/databasetest"
	"koita-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"koita-chat-api/internal/infrastructure/database/repository/usersettingsrepo"
	"koita-chat-api/internal/infrastructure/lock"
	"koita-chat-api/internal/utils/platformerrors"
)

type fakeGateway struct {
	deltas    []string
	streamErr error
	reply     string
	err       error
	// onStream runs before any delta is produced
	onStream func()

	received []chat.Message
	opts     usersettings.ModelOptions
}

func (g *fakeGateway) ChatCompletion(_ context.Context, messages []chat.Message, opts usersettings.ModelOptions) (*chat.Completion, error) {
	g.received = messages
	g.opts = opts
	if g.err != nil {
		return nil, g.err
	}
	return &chat.Completion{Content: g.reply, Model: opts.Model}, nil
}

func (g *fakeGateway) StreamChatCompletion(_ context.Context, messages []chat.Message, opts usersettings.ModelOptions, onToken chat.TokenHandler) (string, error) {
	g.received = messages
	g.opts = opts
	if g.onStream != nil {
		g.onStream()
	}
	var sb strings.Builder
	for _, d := range g.deltas {
		if err := onToken(d); err != nil {
			return sb.String(), err
		}
		sb.WriteString(d)
	}
	return sb.String(), g.streamErr
}

type fakeSearch struct {
	result search.Result
	calls  int
}

func (f *fakeSearch) Name() string { return "fake" }

func (f *fakeSearch) Search(_ context.Context, query string) search.Result {
	f.calls++
	f.result.Query = query
	return f.result
}

type recordingSink struct {
	started bool
	events  []chat.Event
}

func (s *recordingSink) Start() error {
	s.started = true
	return nil
}

func (s *recordingSink) Send(event chat.Event) error {
	if !s.started {
		return errors.New("stream not started")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []chat.EventType {
	out := make([]chat.EventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	orchestrator  *chat.Orchestrator
	conversations conversation.Repository
	settings      usersettings.Repository
	gateway       *fakeGateway
	search        *fakeSearch
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := databasetest.NewDatabase(t)
	f := &fixture{
		conversations: conversationrepo.NewConversationGormRepository(db),
		settings:      usersettingsrepo.NewUserSettingsGormRepository(db),
		gateway:       &fakeGateway{},
		search:        &fakeSearch{},
	}
	f.orchestrator = chat.NewOrchestrator(
		f.conversations,
		usersettings.NewService(f.settings, zerolog.Nop()),
		f.gateway,
		f.search,
		lock.NewLocalLocker(),
		zerolog.Nop(),
	)
	return f
}

func TestSendCreatesConversation(t *testing.T) {
	f := newFixture(t)
	f.gateway.deltas = []string{"\nParis est ", "la capitale ", "de la France."}
	sink := &recordingSink{}

	result, err := f.orchestrator.Send(context.Background(), chat.SendInput{
		UserID:  "usr_1",
		Message: "Quelle est la capitale de la France ?",
	}, sink)
	require.NoError(t, err)
	require.True(t, result.Created)
	assert.False(t, result.Interrupted)
	assert.Equal(t, "\nParis est la capitale de la France.", result.Reply)

	assert.Equal(t, []chat.EventType{
		chat.EventConversation, chat.EventChunk, chat.EventChunk, chat.EventChunk, chat.EventDone,
	}, sink.types())
	assert.Equal(t, result.ConversationID, sink.events[0].ConversationID)
	assert.Equal(t, result.ConversationID, sink.events[len(sink.events)-1].ConversationID)

	conv, err := f.conversations.FindWithMessagesForUser(context.Background(), result.ConversationID, "usr_1")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, "Paris est la capitale de la Fr", conv.Title)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, conversation.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, conversation.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, result.Reply, conv.Messages[1].Content)

	// defaults apply when the user has no stored settings
	assert.Equal(t, usersettings.DefaultAIModel, f.gateway.opts.Model)
	require.Len(t, f.gateway.received, 1)
	assert.Equal(t, conversation.RoleUser, f.gateway.received[0].Role)
}

func TestSendAppendsToExistingConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.conversations.Create(ctx, &conversation.Conversation{ID: "conv_1", UserID: "usr_1", Title: "Bonjour"})
	require.NoError(t, err)
	stale := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, f.conversations.Touch(ctx, "conv_1", stale))

	modelName := "mistral-large-latest"
	_, err = f.settings.Upsert(ctx, &usersettings.UserSettings{UserID: "usr_1", AIModel: modelName, Temperature: 0.3, MaxTokens: 500})
	require.NoError(t, err)

	f.gateway.deltas = []string{"Re-bonjour"}
	result, err := f.orchestrator.Send(ctx, chat.SendInput{UserID: "usr_1", ConversationID: "conv_1", Message: "Encore moi"}, &recordingSink{})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, modelName, f.gateway.opts.Model)
	assert.InDelta(t, 0.3, f.gateway.opts.Temperature, 1e-9)
	assert.Equal(t, 500, f.gateway.opts.MaxTokens)

	count, err := f.conversations.CountMessages(ctx, "conv_1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	conv, err := f.conversations.FindByIDForUser(ctx, "conv_1", "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", conv.Title)
	assert.True(t, conv.UpdatedAt.After(stale.Add(30*time.Minute)))
}

func TestSendUnknownConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.conversations.Create(ctx, &conversation.Conversation{ID: "conv_1", UserID: "usr_owner", Title: "x"})
	require.NoError(t, err)

	sink := &recordingSink{}
	_, err = f.orchestrator.Send(ctx, chat.SendInput{UserID: "usr_1", ConversationID: "conv_1", Message: "Salut"}, sink)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	assert.False(t, sink.started)

	count, err := f.conversations.CountMessages(ctx, "conv_1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSendRejectsBlankMessage(t *testing.T) {
	f := newFixture(t)
	_, err := f.orchestrator.Send(context.Background(), chat.SendInput{UserID: "usr_1", Message: "   "}, &recordingSink{})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestSendBoundsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.conversations.Create(ctx, &conversation.Conversation{ID: "conv_1", UserID: "usr_1", Title: "long"})
	require.NoError(t, err)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		_, err := f.conversations.AppendMessage(ctx, &conversation.Message{
			ID:             fmt.Sprintf("msg_%02d", i),
			ConversationID: "conv_1",
			Role:           conversation.RoleUser,
			Content:        fmt.Sprintf("message %d", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	f.gateway.deltas = []string{"ok"}
	_, err = f.orchestrator.Send(ctx, chat.SendInput{UserID: "usr_1", ConversationID: "conv_1", Message: "dernier"}, &recordingSink{})
	require.NoError(t, err)

	require.Len(t, f.gateway.received, chat.HistoryLimit)
	assert.Equal(t, "message 3", f.gateway.received[0].Content)
	assert.Equal(t, "dernier", f.gateway.received[chat.HistoryLimit-1].Content)
}

func TestSendWebSearch(t *testing.T) {
	tests := []struct {
		name       string
		result     search.Result
		wantSystem bool
	}{
		{
			name:       "context injected",
			result:     search.Succeeded("", []search.Item{{Title: "Météo", Link: "https://meteo.fr", Snippet: "Soleil"}}, ""),
			wantSystem: true,
		},
		{
			name:   "failure degrades silently",
			result: search.Failed("", search.MsgFailed),
		},
		{
			name:   "not configured",
			result: search.Failed("", search.MsgNotConfigured),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.search.result = tt.result
			f.gateway.deltas = []string{"Il fait beau."}

			sink := &recordingSink{}
			_, err := f.orchestrator.Send(context.Background(), chat.SendInput{
				UserID: "usr_1", Message: "Quel temps fait-il ?", UseWebSearch: true,
			}, sink)
			require.NoError(t, err)
			assert.Equal(t, 1, f.search.calls)
			assert.Equal(t, chat.EventDone, sink.events[len(sink.events)-1].Type)

			if tt.wantSystem {
				require.Len(t, f.gateway.received, 2)
				assert.Equal(t, conversation.RoleSystem, f.gateway.received[0].Role)
				assert.True(t, strings.HasPrefix(f.gateway.received[0].Content, chat.WebContextPrefix))
				assert.Contains(t, f.gateway.received[0].Content, "Soleil")
				return
			}
			require.Len(t, f.gateway.received, 1)
			assert.Equal(t, conversation.RoleUser, f.gateway.received[0].Role)
		})
	}
}

func TestSendSkipsSearchWhenDisabled(t *testing.T) {
	f := newFixture(t)
	f.gateway.deltas = []string{"ok"}
	_, err := f.orchestrator.Send(context.Background(), chat.SendInput{UserID: "usr_1", Message: "Salut"}, &recordingSink{})
	require.NoError(t, err)
	assert.Zero(t, f.search.calls)
}

func TestSendStreamInterrupted(t *testing.T) {
	f := newFixture(t)
	f.gateway.deltas = []string{"Début de ", "réponse"}
	f.gateway.streamErr = errors.New("connection reset")
	sink := &recordingSink{}

	result, err := f.orchestrator.Send(context.Background(), chat.SendInput{UserID: "usr_1", Message: "Raconte"}, sink)
	require.NoError(t, err)
	assert.True(t, result.Interrupted)

	assert.Equal(t, []chat.EventType{chat.EventConversation, chat.EventChunk, chat.EventChunk, chat.EventError}, sink.types())
	assert.Equal(t, chat.MsgGenerationFailed, sink.events[3].Content)

	conv, err := f.conversations.FindWithMessagesForUser(context.Background(), result.ConversationID, "usr_1")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Début de réponse", conv.Messages[1].Content)
}

func TestSendFailsBeforeFirstToken(t *testing.T) {
	f := newFixture(t)
	f.gateway.streamErr = errors.New("upstream status 401")
	sink := &recordingSink{}

	_, err := f.orchestrator.Send(context.Background(), chat.SendInput{UserID: "usr_1", Message: "Salut"}, sink)
	require.Error(t, err)
	assert.False(t, sink.started)
	assert.Empty(t, sink.events)
}

func TestSendCancelledBeforeFirstToken(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.gateway.onStream = cancel
	f.gateway.streamErr = context.Canceled
	sink := &recordingSink{}

	_, err := f.orchestrator.Send(ctx, chat.SendInput{UserID: "usr_1", Message: "Salut"}, sink)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, platformerrors.GetPlatformError(err))
	assert.False(t, sink.started)
}

func TestSendEmptyReplyStillCompletes(t *testing.T) {
	f := newFixture(t)
	sink := &recordingSink{}

	result, err := f.orchestrator.Send(context.Background(), chat.SendInput{UserID: "usr_1", Message: "Salut"}, sink)
	require.NoError(t, err)
	assert.Equal(t, []chat.EventType{chat.EventConversation, chat.EventDone}, sink.types())

	conv, err := f.conversations.FindWithMessagesForUser(context.Background(), result.ConversationID, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Salut", conv.Title)
}

func TestTempChat(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply = "Bonjour !"

	reply, err := f.orchestrator.TempChat(context.Background(), "Salut")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", reply)
	assert.Equal(t, usersettings.DefaultAIModel, f.gateway.opts.Model)
	assert.Equal(t, usersettings.DefaultMaxTokens, f.gateway.opts.MaxTokens)

	recent, err := f.conversations.ListRecentForUser(context.Background(), "usr_1", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	f.gateway.err = errors.New("upstream status 500")
	_, err = f.orchestrator.TempChat(context.Background(), "Salut")
	require.Error(t, err)
	assert.Equal(t, chat.MsgGenerationFailed, platformerrors.ClientMessage(platformerrors.GetPlatformError(err)))

	_, err = f.orchestrator.TempChat(context.Background(), "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

// echoGateway replies "re: <last message>" and tracks how many streams overlap.
type echoGateway struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	contextLens []int
}

func (g *echoGateway) ChatCompletion(context.Context, []chat.Message, usersettings.ModelOptions) (*chat.Completion, error) {
	return nil, errors.New("not used")
}

func (g *echoGateway) StreamChatCompletion(_ context.Context, messages []chat.Message, _ usersettings.ModelOptions, onToken chat.TokenHandler) (string, error) {
	g.mu.Lock()
	g.inFlight++
	g.maxInFlight = max(g.maxInFlight, g.inFlight)
	g.contextLens = append(g.contextLens, len(messages))
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}()

	time.Sleep(30 * time.Millisecond)
	reply := "re: " + messages[len(messages)-1].Content
	return reply, onToken(reply)
}

func TestConcurrentSendsOnOneConversationAreSerialized(t *testing.T) {
	db := databasetest.NewDatabase(t)
	conversations := conversationrepo.NewConversationGormRepository(db)
	gateway := &echoGateway{}
	orchestrator := chat.NewOrchestrator(
		conversations,
		usersettings.NewService(usersettingsrepo.NewUserSettingsGormRepository(db), zerolog.Nop()),
		gateway,
		nil,
		lock.NewLocalLocker(),
		zerolog.Nop(),
	)
	ctx := context.Background()

	first, err := orchestrator.Send(ctx, chat.SendInput{UserID: "usr_1", Message: "premier"}, &recordingSink{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, msg := range []string{"deuxième", "troisième"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orchestrator.Send(ctx, chat.SendInput{
				UserID:         "usr_1",
				ConversationID: first.ConversationID,
				Message:        msg,
			}, &recordingSink{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, gateway.maxInFlight)
	assert.Equal(t, []int{1, 3, 5}, gateway.contextLens)

	messages, err := conversations.RecentMessages(ctx, first.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 6)
	for i := 0; i < len(messages); i += 2 {
		question, answer := messages[i], messages[i+1]
		assert.Equal(t, conversation.RoleUser, question.Role)
		assert.Equal(t, conversation.RoleAssistant, answer.Role)
		assert.Equal(t, "re: "+question.Content, answer.Content)
	}
}
