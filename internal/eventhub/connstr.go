// Package eventhub maps Azure Event Hubs connection strings onto the
// namespace's Kafka endpoint.
package eventhub

import (
	"fmt"
	"net"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azeventhubs"
)

const (
	// KafkaPort is the TLS Kafka listener of an Event Hubs namespace.
	KafkaPort = "9093"
	// EmulatorKafkaPort is the plaintext Kafka listener of the local emulator.
	EmulatorKafkaPort = "9092"
	// SASLUser is the fixed SASL PLAIN user when authenticating with a
	// connection string; the password is the connection string itself.
	SASLUser = "$ConnectionString"
)

type ConnectionString struct {
	Raw                 string
	Host                string
	SharedAccessKeyName string
	EntityPath          string
	Emulator            bool
}

// Parse reads a connection string of the form
// Endpoint=sb://<ns>.servicebus.windows.net/;SharedAccessKeyName=<n>;SharedAccessKey=<k>[;EntityPath=<hub>].
func Parse(raw string) (ConnectionString, error) {
	raw = strings.TrimSpace(raw)
	props, err := azeventhubs.ParseConnectionString(raw)
	if err != nil {
		return ConnectionString{}, err
	}
	host := props.FullyQualifiedNamespace
	// The emulator's namespace carries the AMQP port.
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "" {
		return ConnectionString{}, fmt.Errorf("connection string has no namespace host")
	}
	cs := ConnectionString{
		Raw:      raw,
		Host:     host,
		Emulator: props.Emulator,
	}
	if props.SharedAccessKeyName != nil {
		cs.SharedAccessKeyName = *props.SharedAccessKeyName
	}
	if props.EntityPath != nil {
		cs.EntityPath = *props.EntityPath
	}
	return cs, nil
}

// Broker is the Kafka bootstrap address of the namespace.
func (c ConnectionString) Broker() string {
	if c.Emulator {
		return net.JoinHostPort(c.Host, EmulatorKafkaPort)
	}
	return net.JoinHostPort(c.Host, KafkaPort)
}

// CheckEntity fails when the connection string is scoped to a different hub.
func (c ConnectionString) CheckEntity(name string) error {
	if c.EntityPath != "" && c.EntityPath != name {
		return fmt.Errorf("connection string is scoped to event hub %q, not %q", c.EntityPath, name)
	}
	return nil
}
