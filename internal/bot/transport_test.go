package bot

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelTransport struct {
	inbox   chan InboundMessage
	mu      sync.Mutex
	replies []string
}

func (t *channelTransport) Receive(ctx context.Context) (InboundMessage, error) {
	select {
	case msg, ok := <-t.inbox:
		if !ok {
			return InboundMessage{}, io.EOF
		}
		return msg, nil
	case <-ctx.Done():
		return InboundMessage{}, ctx.Err()
	}
}

func (t *channelTransport) Send(_ context.Context, _, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = append(t.replies, text)
	return nil
}

func TestRunHandlesMessagesUntilEOF(t *testing.T) {
	handler, _ := newTestHandler(t)

	transport := &channelTransport{inbox: make(chan InboundMessage, 2)}
	transport.inbox <- InboundMessage{Address: testAddress, Text: "halo"}
	transport.inbox <- InboundMessage{Address: testAddress, Text: "saldo"}
	close(transport.inbox)

	require.NoError(t, handler.Run(context.Background(), transport))

	transport.mu.Lock()
	defer transport.mu.Unlock()
	assert.Len(t, transport.replies, 2)
}

func TestRunStopsOnCancel(t *testing.T) {
	handler, _ := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &channelTransport{inbox: make(chan InboundMessage)}
	assert.NoError(t, handler.Run(ctx, transport))
}

func TestConsoleTransport(t *testing.T) {
	handler, _ := newTestHandler(t)

	var out bytes.Buffer
	transport := NewConsoleTransport(strings.NewReader("halo\n"), &out, testAddress)
	require.NoError(t, handler.Run(context.Background(), transport))
	assert.Contains(t, out.String(), "Selamat datang")

	// Run returns only after every in-flight message is done, so a second
	// run over the same handler sees the onboarded account.
	out.Reset()
	transport = NewConsoleTransport(strings.NewReader("saldo awal 1jt\n"), &out, testAddress)
	require.NoError(t, handler.Run(context.Background(), transport))
	assert.Contains(t, out.String(), "Rp 1.000.000")
}
