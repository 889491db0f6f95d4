package bot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/reply"
)

// Transport delivers inbound messages and carries replies back. The real
// chat connection lives outside this repository; anything that can speak
// this interface can drive the pipeline.
type Transport interface {
	// Receive blocks until the next message arrives. It returns io.EOF
	// when the transport is closed.
	Receive(ctx context.Context) (InboundMessage, error)
	// Send delivers a reply. Delivery is best effort; failures are logged,
	// never retried here.
	Send(ctx context.Context, address, text string) error
}

// Run pumps messages from the transport until it closes or ctx is
// canceled. Messages are handled as independent tasks; ordering per sender
// is enforced by the handler's per-key serialization, not here.
func (h *Handler) Run(ctx context.Context, transport Transport) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		msg, err := transport.Receive(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			return fmt.Errorf("transport receive: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			text, handleErr := h.HandleInboundMessage(ctx, msg)
			if handleErr != nil {
				common.LogError(handleErr, "failed to handle message", common.Fields{
					"address": msg.Address,
				})
				text = reply.GenericError()
			}
			if text == "" {
				return
			}
			if sendErr := transport.Send(ctx, msg.Address, text); sendErr != nil {
				common.LogError(sendErr, "failed to send reply", common.Fields{
					"address": msg.Address,
				})
			}
		}()
	}
}

// ConsoleTransport drives the pipeline from an io.Reader, one message per
// line, and writes replies to an io.Writer. It exists for local
// development and smoke tests; every line is attributed to one fixed
// sender address.
type ConsoleTransport struct {
	scanner *bufio.Scanner
	out     io.Writer
	address string
}

// NewConsoleTransport creates a ConsoleTransport for the given sender
// address.
func NewConsoleTransport(in io.Reader, out io.Writer, address string) *ConsoleTransport {
	return &ConsoleTransport{
		scanner: bufio.NewScanner(in),
		out:     out,
		address: address,
	}
}

// Receive implements Transport.
func (t *ConsoleTransport) Receive(ctx context.Context) (InboundMessage, error) {
	if ctx.Err() != nil {
		return InboundMessage{}, ctx.Err()
	}
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return InboundMessage{}, err
		}
		return InboundMessage{}, io.EOF
	}
	return InboundMessage{
		Address: t.address,
		Text:    strings.TrimSpace(t.scanner.Text()),
	}, nil
}

// Send implements Transport.
func (t *ConsoleTransport) Send(_ context.Context, _, text string) error {
	_, err := fmt.Fprintf(t.out, "%s\n\n", text)
	return err
}
