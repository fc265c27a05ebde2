package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// SyncCommander sends sync commands.
type SyncCommander struct {
	sender Sender
}

// NewSyncCommander returns new SyncCommander using provided sender for sending messages.
func NewSyncCommander(sender Sender) SyncCommander {
	return SyncCommander{
		sender: sender,
	}
}

// SendFullSync requests full synchronization.
func (c SyncCommander) SendFullSync(ctx context.Context) error {
	return c.SendSyncCommand(ctx, SyncCommand{Type: SyncFull})
}

// SendDeltaSync requests synchronization of products changed within last days.
func (c SyncCommander) SendDeltaSync(ctx context.Context, days uint) error {
	return c.SendSyncCommand(ctx, SyncCommand{Type: SyncDelta, Days: days})
}

// SendSyncCommand sends provided sync command.
func (c SyncCommander) SendSyncCommand(ctx context.Context, cmd SyncCommand) error {
	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal sync command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
