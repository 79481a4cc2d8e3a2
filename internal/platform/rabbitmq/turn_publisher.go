package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"askmynotes/internal/model"
)

// TurnPair is the queue payload for one question/answer exchange. Keeping the
// pair in a single message lets the persist worker write both turns in one
// transaction.
type TurnPair struct {
	User      model.ConversationTurn `json:"user"`
	Assistant model.ConversationTurn `json:"assistant"`
}

// TurnPairPublisher enqueues turn pairs for asynchronous persistence. It
// satisfies the app.TurnWriter seam.
type TurnPairPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewTurnPairPublisher(conn *amqp.Connection, queueName string) *TurnPairPublisher {
	return &TurnPairPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *TurnPairPublisher) AppendPair(ctx context.Context, user, assistant model.ConversationTurn) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(TurnPair{User: user, Assistant: assistant})
	if err != nil {
		return fmt.Errorf("marshal turn pair failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish turn pair failed: %w", err)
	}
	return nil
}
