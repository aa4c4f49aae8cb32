package chat

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hospctl/pkg/api"
)

type fakeDoer struct {
	body    any
	err     error
	respond func(result any)
	method  string
	path    string
}

func (f *fakeDoer) Do(ctx context.Context, method, path string, body, result any) error {
	f.method = method
	f.path = path
	f.body = body
	if f.err != nil {
		return f.err
	}
	if f.respond != nil {
		f.respond(result)
	}
	return nil
}

func TestService_Send(t *testing.T) {
	doer := &fakeDoer{
		respond: func(result any) {
			*(result.(*api.ChatResponse)) = api.ChatResponse{
				SessionID: "sess-1",
				Message:   api.ChatMessage{Role: "assistant", Content: "The patient is stable."},
			}
		},
	}
	svc := NewService(doer)

	resp, err := svc.Send(context.Background(), "sess-1", "How is patient p1?")

	require.NoError(t, err)
	assert.Equal(t, "POST", doer.method)
	assert.Equal(t, "/ai-chat/", doer.path)

	req := doer.body.(api.ChatRequest)
	assert.Equal(t, "sess-1", req.SessionID)
	assert.Equal(t, "How is patient p1?", req.Message)
	assert.Equal(t, "The patient is stable.", resp.Message.Content)
}

// TestService_Send_GeneratesSessionID проверяет, что новый диалог получает
// клиентский идентификатор
func TestService_Send_GeneratesSessionID(t *testing.T) {
	doer := &fakeDoer{respond: func(result any) {}}
	svc := NewService(doer)

	resp, err := svc.Send(context.Background(), "", "hello")

	require.NoError(t, err)

	req := doer.body.(api.ChatRequest)
	require.NotEmpty(t, req.SessionID)
	_, parseErr := uuid.Parse(req.SessionID)
	assert.NoError(t, parseErr, "generated session id must be a uuid")

	// Сервер не вернул session_id - остаётся клиентский
	assert.Equal(t, req.SessionID, resp.SessionID)
}

func TestService_History(t *testing.T) {
	doer := &fakeDoer{
		respond: func(result any) {
			*(result.(*[]api.ChatMessage)) = []api.ChatMessage{
				{Role: "user", Content: "hi"},
				{Role: "assistant", Content: "hello"},
			}
		},
	}
	svc := NewService(doer)

	messages, err := svc.History(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "GET", doer.method)
	assert.Equal(t, "/ai-chat/sess-1/messages/", doer.path)
	assert.Len(t, messages, 2)
}
