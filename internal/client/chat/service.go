package chat

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/iudanet/hospctl/pkg/api"
)

// Service - клиент AI ассистента (/ai-chat/)
type Service interface {
	// Send отправляет сообщение ассистенту.
	// Пустой sessionID начинает новый диалог.
	Send(ctx context.Context, sessionID, message string) (*api.ChatResponse, error)

	// History возвращает сообщения диалога
	History(ctx context.Context, sessionID string) ([]api.ChatMessage, error)
}

type apiClient interface {
	Do(ctx context.Context, method, path string, body, result any) error
}

type service struct {
	client apiClient
}

// NewService creates a new AI chat service
func NewService(client apiClient) Service {
	return &service{client: client}
}

func (s *service) Send(ctx context.Context, sessionID, message string) (*api.ChatResponse, error) {
	if sessionID == "" {
		// Идентификатор диалога генерируется на клиенте
		sessionID = uuid.New().String()
	}

	var resp api.ChatResponse
	req := api.ChatRequest{SessionID: sessionID, Message: message}
	if err := s.client.Do(ctx, "POST", "/ai-chat/", req, &resp); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	if resp.SessionID == "" {
		resp.SessionID = sessionID
	}
	return &resp, nil
}

func (s *service) History(ctx context.Context, sessionID string) ([]api.ChatMessage, error) {
	var messages []api.ChatMessage
	path := fmt.Sprintf("/ai-chat/%s/messages/", url.PathEscape(sessionID))
	if err := s.client.Do(ctx, "GET", path, nil, &messages); err != nil {
		return nil, fmt.Errorf("chat history request failed: %w", err)
	}
	return messages, nil
}
