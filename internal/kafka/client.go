package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/richardbizik/sendevents/internal/config"
	"github.com/richardbizik/sendevents/internal/eventhub"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

const clientID = "sendevents"

// Connection is a short lived producer bound to a single event hub.
type Connection struct {
	client      *kgo.Client
	topic       string
	maxBytes    int32
	sendTimeout time.Duration
	closeOnce   sync.Once
}

// Connect builds a producer for the event hub described by conf. Extra options
// are appended after the defaults so callers can override them.
func Connect(conf config.EventHubConfig, opts ...kgo.Opt) (*Connection, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	options, err := GetDefaultConfig(conf)
	if err != nil {
		return nil, err
	}
	client, err := kgo.NewClient(append(options, opts...)...)
	if err != nil {
		return nil, errors.Join(err, errors.New("failed to create kafka client"))
	}
	return &Connection{
		client:      client,
		topic:       conf.Name,
		maxBytes:    conf.MaxBatchBytes,
		sendTimeout: conf.SendTimeoutOrDefault(),
	}, nil
}

// GetDefaultConfig translates the event hub config into franz-go options for
// the namespace's Kafka endpoint.
func GetDefaultConfig(conf config.EventHubConfig) ([]kgo.Opt, error) {
	cs, err := eventhub.Parse(conf.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}
	if err := cs.CheckEntity(conf.Name); err != nil {
		return nil, err
	}

	options := []kgo.Opt{
		kgo.SeedBrokers(cs.Broker()),
		kgo.ClientID(clientID),
		kgo.WithLogger(newKLogger(slog.Default())),
		kgo.DefaultProduceTopic(conf.Name),
		kgo.ProducerBatchMaxBytes(conf.MaxBatchBytes),
		// Bounds metadata waits and retries of every record.
		kgo.RecordDeliveryTimeout(conf.SendTimeoutOrDefault()),
		// Event Hubs does not implement idempotent producers.
		kgo.DisableIdempotentWrite(),
		kgo.SASL(plain.Auth{
			User: eventhub.SASLUser,
			Pass: cs.Raw,
		}.AsMechanism()),
	}

	netDialer := &net.Dialer{Timeout: conf.DialTimeout}
	if cs.Emulator {
		return append(options, kgo.Dialer(netDialer.DialContext)), nil
	}

	tlsConfig := &tls.Config{
		ServerName: cs.Host,
		MinVersion: tls.VersionTLS12,
	}
	if conf.TLS.CAPath != "" {
		caCert, err := os.ReadFile(conf.TLS.CAPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("unable to append CA: %s", conf.TLS.CAPath)
		}
		tlsConfig.RootCAs = pool
	}
	tlsDialer := &tls.Dialer{
		NetDialer: netDialer,
		Config:    tlsConfig,
	}
	return append(options, kgo.Dialer(tlsDialer.DialContext)), nil
}

// CreateBatch returns an empty batch sized to the producer's batch limit.
func (c *Connection) CreateBatch() *Batch {
	return NewBatch(c.topic, c.maxBytes)
}

// Send produces every record of the batch and blocks until all of them are
// acknowledged, failed, or the send timeout elapses.
func (c *Connection) Send(ctx context.Context, batch *Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()
	results := c.client.ProduceSync(ctx, batch.Records()...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("failed to send batch to %s: %w", c.topic, err)
	}
	return nil
}

// Close releases the client. It is safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(c.client.Close)
}
