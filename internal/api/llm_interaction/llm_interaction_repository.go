package llmInteraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

var (
	_ LLmInteractionRepository = (*PostgresLlmInteractionRepo)(nil)
	_ LLmInteractionRepository = NopRepository{}
)

// LLmInteractionRepository records live generations. Cached results are never recorded.
type LLmInteractionRepository interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error
}

// Execer is the subset of *pgxpool.Pool the repository needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresLlmInteractionRepo struct {
	logger *slog.Logger
	pgpool Execer
}

func NewPostgresLlmInteractionRepo(pgpool Execer, logger *slog.Logger) *PostgresLlmInteractionRepo {
	return &PostgresLlmInteractionRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresLlmInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error {
	query := `
        INSERT INTO llm_interactions (
            id, prompt, response_text, provider, model_used, prompt_mode,
            token_limit, latency_ms, input_tokens, output_tokens,
            platform_count, format_count, mobile_optimized, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
	_, err := r.pgpool.Exec(ctx, query,
		interaction.ID, interaction.Prompt, interaction.ResponseText,
		string(interaction.Provider), interaction.ModelUsed, interaction.PromptMode,
		interaction.TokenLimit, interaction.LatencyMs, interaction.InputTokens, interaction.OutputTokens,
		interaction.PlatformCount,
		interaction.FormatCount, interaction.MobileOptimized, interaction.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save llm interaction", slog.Any("error", err))
		return fmt.Errorf("failed to save llm interaction: %w", err)
	}
	return nil
}

// NopRepository is used when the interaction log is disabled.
type NopRepository struct{}

func (NopRepository) SaveInteraction(context.Context, types.LlmInteraction) error { return nil }
