package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	addToCartTopic   = "techstore.add-to-cart"
	subscriberBuffer = 64
)

// AddToCart is broadcast when the shopper adds a product. The fields are the
// snapshot the cart keeps; later catalog changes do not rewrite them.
type AddToCart struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Bus is the in-process broadcast channel between storefront surfaces. Every
// subscriber sees every published event exactly once; delivery order across
// subscribers is unspecified, order within one subscriber follows publish
// order.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

func (b *Bus) PublishAddToCart(ctx context.Context, ev AddToCart) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding add-to-cart event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubsub.Publish(addToCartTopic, msg)
}

// SubscribeAddToCart returns a channel of decoded events. The channel closes
// when ctx is cancelled or the bus shuts down. Malformed payloads are acked
// and dropped.
func (b *Bus) SubscribeAddToCart(ctx context.Context) (<-chan AddToCart, error) {
	msgs, err := b.pubsub.Subscribe(ctx, addToCartTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", addToCartTopic, err)
	}

	// Buffered so a publisher is never held hostage by a subscriber that is
	// mid-mutation; events are acked as soon as they decode.
	out := make(chan AddToCart, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var ev AddToCart
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
