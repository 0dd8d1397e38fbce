package usecase

import (
	"context"
	"errors"
	"testing"

	"DexPulse/internal/domain/models"
	pkgkafka "DexPulse/pkg/kafka"
)

type recordingWatcher struct {
	activated   []models.TokenRef
	deactivated int
}

func (w *recordingWatcher) Activate(token models.TokenRef) uint64 {
	w.activated = append(w.activated, token)
	return uint64(len(w.activated))
}

func (w *recordingWatcher) Deactivate() { w.deactivated++ }

func (w *recordingWatcher) Latest() models.WatchSnapshot { return models.WatchSnapshot{} }

func (w *recordingWatcher) Subscribe() (<-chan models.WatchSnapshot, func()) {
	return make(chan models.WatchSnapshot), func() {}
}

func TestWatchCommandHandler(t *testing.T) {
	w := &recordingWatcher{}
	h := NewWatchCommandHandler("dexpulse.watch", w, nil)
	ctx := context.Background()

	if h.Topic() != "dexpulse.watch" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}
	if err := h.Handle(ctx, []byte(`{"action":"ACTIVATE","chain":"Base","token":"0xabc"}`)); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(w.activated) != 1 || w.activated[0] != models.NewTokenRef("base", "0xabc") {
		t.Fatalf("unexpected activations %+v", w.activated)
	}
	if err := h.Handle(ctx, []byte(`{"action":"deactivate"}`)); err != nil || w.deactivated != 1 {
		t.Fatalf("deactivate: %v (count %d)", err, w.deactivated)
	}

	for _, body := range []string{`not json`, `{"action":"activate","chain":"base"}`, `{"action":"pause"}`} {
		if err := h.Handle(ctx, []byte(body)); !errors.Is(err, pkgkafka.ErrPermanent) {
			t.Fatalf("%s: expected permanent error, got %v", body, err)
		}
	}
}
