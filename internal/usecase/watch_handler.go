package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"DexPulse/internal/domain/models"
	domsvc "DexPulse/internal/domain/service"
	pkgkafka "DexPulse/pkg/kafka"
	applogger "DexPulse/pkg/logger"
)

// WatchCommandHandler applies watch commands consumed from Kafka to the
// refresh controller. Malformed commands are permanent errors.
type WatchCommandHandler struct {
	topic   string
	watcher domsvc.Watcher
	log     *applogger.Logger
}

// NewWatchCommandHandler applies watch commands consumed from topic.
func NewWatchCommandHandler(topic string, watcher domsvc.Watcher, l *applogger.Logger) *WatchCommandHandler {
	if l == nil {
		l = applogger.Nop()
	}
	return &WatchCommandHandler{topic: topic, watcher: watcher, log: l}
}

func (h *WatchCommandHandler) Topic() string { return h.topic }

// incoming message schema: {"action":"activate"|"deactivate","chain":..,"token":..}
func (h *WatchCommandHandler) Handle(_ context.Context, b []byte) error {
	var cmd models.WatchCommand
	if err := json.Unmarshal(b, &cmd); err != nil {
		return fmt.Errorf("%w: decode watch command: %v", pkgkafka.ErrPermanent, err)
	}

	switch models.WatchAction(strings.ToLower(string(cmd.Action))) {
	case models.WatchActivate:
		token := models.NewTokenRef(cmd.Chain, cmd.Token)
		if token.IsZero() {
			return fmt.Errorf("%w: %w", pkgkafka.ErrPermanent, models.ErrInvalidToken)
		}
		gen := h.watcher.Activate(token)
		h.log.Info("watch command applied",
			applogger.String("action", string(models.WatchActivate)),
			applogger.String("token", token.Key()),
			applogger.Uint64("generation", gen),
		)
	case models.WatchDeactivate:
		h.watcher.Deactivate()
		h.log.Info("watch command applied", applogger.String("action", string(models.WatchDeactivate)))
	default:
		return fmt.Errorf("%w: unknown watch action %q", pkgkafka.ErrPermanent, cmd.Action)
	}
	return nil
}
