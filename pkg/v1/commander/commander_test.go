package commander_test

import (
	"context"
	"testing"

	"github.com/ecomsimply/price-truth/pkg/v1/commander"
	"github.com/ecomsimply/price-truth/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendPriceCommand(t *testing.T) {
	body := []byte(`{"sku":"B0TEST","query":"iphone 15 pro","forceRefresh":true}`)

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewPriceCommander(sender)
			err := cmndr.SendPriceCommand(context.TODO(), "B0TEST", "iphone 15 pro", true)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitSendPriceCommandOmitsEmptyFields(t *testing.T) {
	body := []byte(`{"query":"iphone 15 pro"}`)

	sender := mocks.NewSender(t)
	sender.On("Send", mock.Anything, body).Return(nil)

	cmndr := commander.NewPriceCommander(sender)
	err := cmndr.SendPriceCommand(context.TODO(), "", "iphone 15 pro", false)

	require.NoError(t, err, "shouldn't return any errors")
}
