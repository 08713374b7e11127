package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func newTestConsumer(handler MessageHandler) *Consumer {
	c := &Consumer{
		routingKey: "contract.created",
		logger:     zap.NewNop(),
	}
	c.SetHandler(handler)
	return c
}

func delivery(ack *fakeAcknowledger, redelivered bool) amqp091.Delivery {
	return amqp091.Delivery{
		Acknowledger: ack,
		Redelivered:  redelivered,
		Body:         []byte(`{}`),
	}
}

func TestProcessAcksOnSuccess(t *testing.T) {
	ack := &fakeAcknowledger{}
	c := newTestConsumer(func(ctx context.Context, data json.RawMessage) error {
		return nil
	})

	c.process(delivery(ack, false))

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestProcessRequeuesFirstFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	c := newTestConsumer(func(ctx context.Context, data json.RawMessage) error {
		return errors.New("db unavailable")
	})

	c.process(delivery(ack, false))

	require.True(t, ack.nacked)
	assert.True(t, ack.requeue, "first failure should requeue the message")
	assert.False(t, ack.acked)
}

func TestProcessDeadLettersRedeliveredFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	c := newTestConsumer(func(ctx context.Context, data json.RawMessage) error {
		return errors.New("db unavailable")
	})

	c.process(delivery(ack, true))

	require.True(t, ack.nacked)
	assert.False(t, ack.requeue, "a redelivered failure should be dead-lettered, not requeued")
}

func TestProcessNacksOnPanic(t *testing.T) {
	ack := &fakeAcknowledger{}
	c := newTestConsumer(func(ctx context.Context, data json.RawMessage) error {
		panic("boom")
	})

	require.NotPanics(t, func() {
		c.process(delivery(ack, false))
	})
	require.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}
