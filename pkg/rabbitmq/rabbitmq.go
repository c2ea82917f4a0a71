// Package rabbitmq publica eventos de inventario en una cola durable de RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// Config datos de conexión. Queue es la cola durable donde caen los eventos.
type Config struct {
	URL   string
	Queue string
}

// Client mantiene la conexión y el canal. Publish es seguro para uso concurrente.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex
}

// NewClient conecta, abre un canal y declara la cola.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq: URL vacía")
	}
	if cfg.Queue == "" {
		cfg.Queue = "inventario.events"
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: conectar: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: abrir canal: %w", err)
	}
	_, err = ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: declarar cola %s: %w", cfg.Queue, err)
	}
	log.Info().Str("queue", cfg.Queue).Msg("RabbitMQ conectado")
	return &Client{conn: conn, channel: ch, queue: cfg.Queue}, nil
}

// Publish serializa payload a JSON y lo publica en la cola con el tipo routingKey.
// El canal de amqp no es seguro entre goroutines, por eso el mutex.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar %s: %w", routingKey, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return errors.New("rabbitmq: canal cerrado")
	}
	err = c.channel.Publish(
		"",      // exchange por defecto
		c.queue, // la routing key del exchange por defecto es el nombre de la cola
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         routingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		})
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", routingKey, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cerrar canal: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cerrar conexión: %w", err))
		}
		c.conn = nil
	}
	return errors.Join(errs...)
}
