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

// PriceCommand requests a price truth lookup for a sku or a free-text query.
type PriceCommand struct {
	SKU          string `json:"sku,omitempty"`
	Query        string `json:"query,omitempty"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// PriceCommander sends price lookup commands.
type PriceCommander struct {
	sender Sender
}

// NewPriceCommander returns new PriceCommander using provided sender for sending messages.
func NewPriceCommander(sender Sender) PriceCommander {
	return PriceCommander{
		sender: sender,
	}
}

// SendPriceCommand sends price lookup command for provided sku or query.
func (c PriceCommander) SendPriceCommand(ctx context.Context, sku, query string, forceRefresh bool) error {
	cmd := PriceCommand{
		SKU:          sku,
		Query:        query,
		ForceRefresh: forceRefresh,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal price command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
