package oracle

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claude struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// New creates an Analyzer backed by the Anthropic Messages API. The document
// is sent as a native PDF block together with the composed prompt.
func New(cfg *Config, logger *slog.Logger) Analyzer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &claude{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.TimeoutDuration(),
		now:       time.Now,
		logger:    logger.With("system", "oracle"),
	}
}

func (c *claude) Analyze(ctx context.Context, req Request) (AnalysisRecord, error) {
	if len(req.Document) == 0 {
		return AnalysisRecord{}, ErrEmptyDocument
	}

	prompt, err := ComposePrompt(req, c.now())
	if err != nil {
		return AnalysisRecord{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(req.Document),
				}),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("analyze %s: %w", req.Mode, err)
	}

	c.logger.Info(
		"analysis complete",
		"mode", req.Mode,
		"original", req.OriginalName,
		"certificate", req.CertificateName,
		"tokens_in", message.Usage.InputTokens,
		"tokens_out", message.Usage.OutputTokens,
		"duration", time.Since(start),
	)

	for _, block := range message.Content {
		if block.Type != "text" {
			continue
		}

		rec, warnings, err := Decode(block.Text)
		if err != nil {
			return AnalysisRecord{}, err
		}
		if len(warnings) > 0 {
			c.logger.Warn("response coerced", "mode", req.Mode, "warnings", warnings)
		}
		return rec, nil
	}

	return AnalysisRecord{}, ErrNoTextContent
}
