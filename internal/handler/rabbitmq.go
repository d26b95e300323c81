package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/ecomsimply/price-truth/internal/platform/rabbitmq"
	"github.com/ecomsimply/price-truth/pkg/v1/commander"
	"github.com/rs/zerolog"
)

// PriceService resolves price truth for a sku or query.
type PriceService interface {
	GetPriceTruth(ctx context.Context, sku, query string, forceRefresh bool) (*models.PriceTruthResponse, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq     *rabbitmq.RabbitMQ
	service PriceService
	logger  *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, service PriceService, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:     rmq,
		service: service,
		logger:  logger,
	}
}

// Start starts consuming and handling price lookup commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, func(ctx context.Context, message []byte) error {
		cmd, err := decodeMessage(message)
		if err != nil {
			return err
		}

		h.logger.Debug().
			Str("sku", cmd.SKU).
			Str("query", cmd.Query).
			Bool("forceRefresh", cmd.ForceRefresh).
			Msg("price lookup started")

		resp, err := h.service.GetPriceTruth(ctx, cmd.SKU, cmd.Query, cmd.ForceRefresh)
		if err != nil {
			return fmt.Errorf("price lookup failed: %w", err)
		}

		if resp == nil {
			h.logger.Debug().
				Str("sku", cmd.SKU).
				Str("query", cmd.Query).
				Msg("price lookup skipped, service disabled")
			return nil
		}

		h.logger.Debug().
			Str("sku", cmd.SKU).
			Str("query", cmd.Query).
			Str("status", string(resp.Status)).
			Int("sourcesCount", resp.SourcesCount).
			Msg("price lookup finished")

		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func decodeMessage(msg []byte) (*commander.PriceCommand, error) {
	var cmd commander.PriceCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode price command: %w", err)
	}

	return &cmd, err
}
