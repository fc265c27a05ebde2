package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/pim-sync/internal/syncer"
	"github.com/MichalMitros/pim-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Consumer --filename consumer.go
//go:generate mockery --name Syncer --filename syncer.go

// Consumer consumes messages from queue.
// Returned errors channel has to be drained for consuming to progress.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Syncer runs synchronizations.
type Syncer interface {
	RunFull(ctx context.Context) (syncer.FullResult, error)
	RunDelta(ctx context.Context, days uint) (syncer.DeltaResult, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	consumer    Consumer
	syncer      Syncer
	defaultDays uint
	logger      *zerolog.Logger
}

// NewHandler returns new RMQHandler. Delta commands without days use defaultDays.
func NewHandler(consumer Consumer, syncer Syncer, defaultDays uint, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		consumer:    consumer,
		syncer:      syncer,
		defaultDays: defaultDays,
		logger:      logger,
	}
}

// Start starts consuming and handling sync commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.handle)
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

func (h *RMQHandler) handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("type", string(cmd.Type)).
		Uint("days", cmd.Days).
		Msg("sync command received")

	switch cmd.Type {
	case commander.SyncFull:
		_, err = h.syncer.RunFull(ctx)
	case commander.SyncDelta:
		days := cmd.Days
		if days == 0 {
			days = h.defaultDays
		}
		_, err = h.syncer.RunDelta(ctx, days)
	default:
		return fmt.Errorf("unknown sync type %q: %w", cmd.Type, platform.ErrValidation)
	}

	if errors.Is(err, platform.ErrAlreadyRunning) {
		h.logger.Info().
			Str("type", string(cmd.Type)).
			Msg("synchronization already running, command skipped")
		return nil
	}

	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	return nil
}

func decodeMessage(msg []byte) (*commander.SyncCommand, error) {
	var cmd commander.SyncCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode sync command: %w", err)
	}

	return &cmd, err
}
