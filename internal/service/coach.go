package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/sportconnect/sportconnect-api/internal/config"
)

var ErrCoachUnavailable = errors.New("coach is unavailable right now")

const coachSystemPrompt = `You are Coach Sport+, a virtual assistant for the Sport Connect platform.
Your role is to recommend sporting activities suited to the user's age, level and preferences,
encourage regular practice with a positive and supportive tone, give simple advice on
nutrition, hydration and warm-ups, and explain the rules of sports in plain language.
Keep answers short (3-4 sentences unless more detail is asked for). If asked for medical
advice, recommend seeing a health professional instead.`

type coachChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type coachChatRequest struct {
	Model    string             `json:"model"`
	Messages []coachChatMessage `json:"messages"`
}

type coachChatResponse struct {
	Choices []struct {
		Message coachChatMessage `json:"message"`
	} `json:"choices"`
}

// CoachService proxies questions to an OpenAI-compatible chat-completion API.
// It never touches the ledger or event state: any failure is reported to the
// caller and nothing else.
type CoachService struct {
	conf   *config.CoachConfig
	client *http.Client
}

func NewCoachService(conf *config.CoachConfig) *CoachService {
	return &CoachService{
		conf: conf,
		client: &http.Client{
			Timeout: conf.Timeout,
		},
	}
}

func (s *CoachService) Ask(ctx context.Context, question string) (string, error) {
	payload := coachChatRequest{
		Model: s.conf.Model,
		Messages: []coachChatMessage{
			{Role: "system", Content: coachSystemPrompt},
			{Role: "user", Content: question},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	url := s.conf.APIURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.conf.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().Warn("coach API call failed", zap.Error(err))

		return "", ErrCoachUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll -> %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("coach API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))

		return "", ErrCoachUnavailable
	}

	var out coachChatResponse
	if err = json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("json.Unmarshal -> %w", err)
	}

	if len(out.Choices) == 0 {
		return "", ErrCoachUnavailable
	}

	return out.Choices[0].Message.Content, nil
}
