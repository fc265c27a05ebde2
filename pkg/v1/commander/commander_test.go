package commander_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/pim-sync/pkg/v1/commander"
	"github.com/MichalMitros/pim-sync/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendSyncCommand(t *testing.T) {
	tests := map[string]struct {
		send        func(c commander.SyncCommander) error
		body        string
		senderError error
		wantErr     error
	}{
		"full": {
			send: func(c commander.SyncCommander) error { return c.SendFullSync(context.TODO()) },
			body: `{"type":"full"}`,
		},
		"delta": {
			send: func(c commander.SyncCommander) error { return c.SendDeltaSync(context.TODO(), 3) },
			body: `{"type":"delta","days":3}`,
		},
		"sender error": {
			send: func(c commander.SyncCommander) error {
				return c.SendSyncCommand(context.TODO(), commander.SyncCommand{Type: commander.SyncFull})
			},
			body:        `{"type":"full"}`,
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, []byte(tt.body)).Return(tt.senderError)

			err := tt.send(commander.NewSyncCommander(sender))

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
