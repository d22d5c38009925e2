package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// ErrEmptyMessage is returned when a send is attempted with a blank
// body; no network call is made in that case.
var ErrEmptyMessage = errors.New("chat: message body is empty")

// UnknownCounterpart is rendered when an account lookup fails.
const UnknownCounterpart = "unknown"

// ChatService lists the people the current account has talked to and
// loads message history on demand. There is no push channel; every view
// of a thread is a full refetch.
type ChatService struct {
	cfg    *config.Config
	api    *api.Client
	logger *utils.Logger
}

// NewChatService creates a ChatService.
func NewChatService(cfg *config.Config, client *api.Client, logger *utils.Logger) *ChatService {
	return &ChatService{cfg: cfg, api: client, logger: logger}
}

// GroupByCounterpart reduces a conversation list to one thread per
// counterpart, keeping the most recently created conversation for each.
// Threads come back newest first.
func GroupByCounterpart(convs []models.Conversation, accountID string) []models.Thread {
	latest := make(map[string]models.Conversation)
	for _, conv := range convs {
		other := conv.CounterpartOf(accountID)
		if cur, ok := latest[other]; !ok || conv.CreatedAt.After(cur.CreatedAt) {
			latest[other] = conv
		}
	}

	threads := make([]models.Thread, 0, len(latest))
	for other, conv := range latest {
		threads = append(threads, models.Thread{
			Conversation:  conv,
			CounterpartID: other,
		})
	}
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].Conversation.CreatedAt.After(threads[j].Conversation.CreatedAt)
	})
	return threads
}

// Threads fetches the account's conversations, groups them by
// counterpart and resolves display names in parallel. A failed lookup
// degrades that one thread to the "unknown" placeholder; it never
// aborts the batch.
func (s *ChatService) Threads(ctx context.Context, accountID string) ([]models.Thread, error) {
	convs, err := s.api.ConversationsOf(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("chat: list conversations: %w", err)
	}

	threads := GroupByCounterpart(convs, accountID)

	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)
	var mu sync.Mutex

	for i := range threads {
		i := i
		pool.Submit(func() {
			acc, err := s.api.AccountByID(ctx, threads[i].CounterpartID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("[chat] account %s lookup failed: %v", threads[i].CounterpartID, err)
				threads[i].CounterpartName = UnknownCounterpart
				return
			}
			threads[i].CounterpartName = acc.DisplayName()
		})
	}
	pool.Wait()

	return threads, nil
}

// Open loads the full message history of a conversation.
func (s *ChatService) Open(ctx context.Context, conversationID string) ([]models.Message, error) {
	msgs, err := s.api.MessagesOf(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("chat: load messages: %w", err)
	}
	return msgs, nil
}

// Send validates the body, posts the message and refetches the whole
// thread. Blank bodies are rejected before any network call.
func (s *ChatService) Send(ctx context.Context, conversationID, senderID, body string) ([]models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.api.SendMessage(ctx, conversationID, senderID, body); err != nil {
		return nil, fmt.Errorf("chat: send message: %w", err)
	}

	return s.Open(ctx, conversationID)
}

// StartThread returns the existing conversation with the counterpart,
// or creates one when none exists.
func (s *ChatService) StartThread(ctx context.Context, accountID, counterpartID string) (*models.Conversation, error) {
	convs, err := s.api.ConversationsOf(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("chat: list conversations: %w", err)
	}

	for _, t := range GroupByCounterpart(convs, accountID) {
		if t.CounterpartID == counterpartID {
			conv := t.Conversation
			return &conv, nil
		}
	}

	conv, err := s.api.CreateConversation(ctx, accountID, counterpartID)
	if err != nil {
		return nil, fmt.Errorf("chat: create conversation: %w", err)
	}
	return conv, nil
}
