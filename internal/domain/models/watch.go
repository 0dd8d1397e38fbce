package models

import "time"

// WatchState is the refresh controller state.
type WatchState string

const (
	WatchIdle     WatchState = "idle"
	WatchFetching WatchState = "fetching"
	WatchReady    WatchState = "ready"
	WatchError    WatchState = "error"
)

// WatchSnapshot is what the refresh controller exposes to readers.
type WatchSnapshot struct {
	Token      TokenRef      `json:"token"`
	Generation uint64        `json:"generation"`
	State      WatchState    `json:"state"`
	Result     *SignalResult `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// WatchAction is a remote command for the refresh controller.
type WatchAction string

const (
	WatchActivate   WatchAction = "activate"
	WatchDeactivate WatchAction = "deactivate"
)

// WatchCommand is consumed from Kafka.
type WatchCommand struct {
	Action WatchAction `json:"action"`
	Chain  string      `json:"chain"`
	Token  string      `json:"token"`
}
