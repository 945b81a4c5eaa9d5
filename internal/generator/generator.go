package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"codeberg.org/wexar/server/internal/llm"
	"codeberg.org/wexar/server/internal/logger"
)

const (
	MinPromptLength = 3
	MaxPromptLength = 5000

	cacheKeyPromptPrefix = 50
)

// fixed sampling parameters and loop bounds
func DefaultConfig() Config {
	return Config{
		Model:            "mistralai/devstral-2512:free",
		MaxRetries:       3,
		AttemptTimeout:   60 * time.Second,
		BackoffBase:      time.Second,
		CacheTTL:         time.Hour,
		Temperature:      0.9,
		MaxTokens:        8000,
		TopP:             0.9,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.3,
	}
}

// cache may be nil. zero fields in config fall back to DefaultConfig.
func New(client Completer, cache Cache, config Config) *Generator {
	defaults := DefaultConfig()

	if config.Model == "" {
		config.Model = defaults.Model
	}

	if config.MaxRetries <= 0 {
		config.MaxRetries = defaults.MaxRetries
	}

	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = defaults.AttemptTimeout
	}

	if config.BackoffBase <= 0 {
		config.BackoffBase = defaults.BackoffBase
	}

	if config.CacheTTL <= 0 {
		config.CacheTTL = defaults.CacheTTL
	}

	if config.MaxTokens <= 0 {
		config.Temperature = defaults.Temperature
		config.MaxTokens = defaults.MaxTokens
		config.TopP = defaults.TopP
		config.FrequencyPenalty = defaults.FrequencyPenalty
		config.PresencePenalty = defaults.PresencePenalty
	}

	return &Generator{
		client: client,
		cache:  cache,
		config: config,
		sleep:  sleepContext,
	}
}

// turns a request into validated HTML, retrying transient and content
// failures with exponential backoff. errors are always *Error.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := validatePrompt(req.base().Prompt); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("request_id", req.base().ID)
	edit := isEdit(req)
	key := CacheKey(req)

	if cached, ok := g.cacheGet(ctx, key); ok {
		log.Info("returning cached generation", "cache_key", key)
		return &cached, nil
	}

	messages := ComposeMessages(req)

	log.Info("generation started",
		"model", g.config.Model,
		"edit", edit,
		"prompt_length", utf8.RuneCountInString(req.base().Prompt),
		"history_length", len(req.base().History),
	)

	var last attemptOutcome

	for attempt := 0; attempt < g.config.MaxRetries; attempt++ {
		outcome := g.attempt(ctx, messages, edit)
		attemptLog := log.With("attempt", attempt+1, "max_attempts", g.config.MaxRetries)

		switch outcome.kind {
		case outcomeSuccess:
			attemptLog.Info("generation succeeded", "code_length", len(outcome.result.Code))
			g.cacheSet(ctx, key, outcome.result)
			return &outcome.result, nil

		case outcomeTerminal:
			outcome.err.Attempts = attempt + 1
			attemptLog.Warn("generation failed", "kind", outcome.err.Kind, "error", outcome.err)
			return nil, outcome.err
		}

		last = outcome
		attemptLog.Warn("attempt failed", "kind", outcome.err.Kind, "error", outcome.err)

		if attempt == g.config.MaxRetries-1 {
			break
		}

		delay := backoff(g.config.BackoffBase, attempt)
		attemptLog.Info("retrying after backoff", "backoff", delay)

		if err := g.sleep(ctx, delay); err != nil {
			e := newError(KindCanceled, "request canceled", err)
			e.Attempts = attempt + 1
			return nil, e
		}
	}

	if last.isContentFailure() {
		return g.repair(ctx, log, key, last)
	}

	return nil, exhausted(last, g.config.MaxRetries)
}

// one upstream call under its own deadline, classified into an outcome
func (g *Generator) attempt(ctx context.Context, messages []llm.Message, edit bool) attemptOutcome {
	attemptCtx, cancel := context.WithTimeout(ctx, g.config.AttemptTimeout)
	defer cancel()

	resp, err := g.client.ChatCompletion(attemptCtx, llm.ChatRequest{
		Model:            g.config.Model,
		Messages:         messages,
		Temperature:      g.config.Temperature,
		MaxTokens:        g.config.MaxTokens,
		TopP:             g.config.TopP,
		FrequencyPenalty: g.config.FrequencyPenalty,
		PresencePenalty:  g.config.PresencePenalty,
	})
	if err != nil {
		return classifyCallError(ctx, err, g.config.AttemptTimeout)
	}

	if resp.ProviderError != nil {
		if !hasUsableContent(resp.Content) {
			return classifyProviderError(resp.ProviderError)
		}

		logger.FromContext(ctx).Warn("provider warning with usable content", "error", resp.ProviderError.Error())
	}

	if strings.TrimSpace(resp.Content) == "" {
		return retryable(newError(KindUpstream, "empty response from upstream", nil))
	}

	extracted := Extract(resp.Content, edit)
	validation := Validate(extracted.Code)

	if !validation.IsValid {
		e := newError(KindContent, "generated code is invalid: "+strings.Join(validation.Errors, ", "), nil)
		e.Details = validation.Errors

		return attemptOutcome{
			kind:       outcomeRetryable,
			err:        e,
			extracted:  extracted,
			validation: validation,
		}
	}

	if len(validation.Warnings) > 0 {
		logger.FromContext(ctx).Warn("code validation warnings", "warnings", validation.Warnings)
	}

	return success(Result{
		Code:           extracted.Code,
		Explanation:    extracted.Explanation,
		Conversational: true,
	})
}

// single repair pass over the last invalid code, validated once more
func (g *Generator) repair(ctx context.Context, log *slog.Logger, key string, last attemptOutcome) (*Result, error) {
	repaired := Repair(last.extracted.Code)
	revalidation := Validate(repaired)

	if !revalidation.IsValid {
		log.Warn("code repair failed", "errors", last.validation.Errors)

		e := newError(KindContent,
			fmt.Sprintf("generated code is invalid: %s", strings.Join(last.validation.Errors, ", ")), nil)
		e.Details = last.validation.Errors
		e.Attempts = g.config.MaxRetries

		return nil, e
	}

	log.Info("code repaired", "warnings", revalidation.Warnings)

	result := Result{
		Code:           repaired,
		Explanation:    last.extracted.Explanation,
		Conversational: true,
	}
	g.cacheSet(ctx, key, result)

	return &result, nil
}

// wraps the last retryable failure once the attempt budget is spent
func exhausted(last attemptOutcome, attempts int) *Error {
	if last.err == nil {
		return &Error{Kind: KindUpstream, Message: "failed after multiple attempts", Attempts: attempts}
	}

	return &Error{
		Kind:       last.err.Kind,
		Message:    fmt.Sprintf("%s (failed after %d attempts)", last.err.Message, attempts),
		StatusCode: last.err.StatusCode,
		Attempts:   attempts,
		Details:    last.err.Details,
		Err:        last.err.Err,
	}
}

func validatePrompt(prompt string) *Error {
	n := utf8.RuneCountInString(strings.TrimSpace(prompt))

	switch {
	case n == 0:
		return newError(KindInput, "prompt must not be empty", nil)
	case n < MinPromptLength:
		return newError(KindInput, fmt.Sprintf("prompt must be at least %d characters", MinPromptLength), nil)
	case utf8.RuneCountInString(prompt) > MaxPromptLength:
		return newError(KindInput, fmt.Sprintf("prompt must be at most %d characters", MaxPromptLength), nil)
	}

	return nil
}
