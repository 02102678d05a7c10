package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alvropena/kakeiboo/internal/bot"
	"github.com/alvropena/kakeiboo/internal/config"
)

// Request is the incoming API Gateway payload.
type Request struct {
	Body string `json:"body"`
}

// Response is the API Gateway reply.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one webhook-delivered Telegram update.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	b, err := bot.NewBot(cfg, logger)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point used only by the serverless runtime.
}
