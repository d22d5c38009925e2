package api

import (
	"context"
	"net/url"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

type createConversationRequest struct {
	AccountID1 string `json:"accountId1"`
	AccountID2 string `json:"accountId2"`
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
}

// ConversationsOf fetches every conversation involving the account, in
// whatever order the server returns them.
func (c *Client) ConversationsOf(ctx context.Context, accountID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	if _, err := c.get(ctx, "Conversation/GetByAccountId/"+url.PathEscape(accountID), nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// CreateConversation opens a thread between two accounts.
func (c *Client) CreateConversation(ctx context.Context, accountID1, accountID2 string) (*models.Conversation, error) {
	var conv models.Conversation
	req := createConversationRequest{AccountID1: accountID1, AccountID2: accountID2}
	if _, err := c.post(ctx, "Conversation", req, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// MessagesOf fetches the full message history of a conversation. There
// is no incremental sync; callers refetch after every send.
func (c *Client) MessagesOf(ctx context.Context, conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	if _, err := c.get(ctx, "Message/GetByConversationId/"+url.PathEscape(conversationID), nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage posts one message into a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID, senderID, content string) error {
	req := sendMessageRequest{ConversationID: conversationID, SenderID: senderID, Content: content}
	_, err := c.post(ctx, "Message", req, nil)
	return err
}
