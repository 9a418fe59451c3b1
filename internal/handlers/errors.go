package handlers

import (
	"errors"
	"net/http"

	"github.com/richardbizik/sendevents/internal/config"
	"github.com/richardbizik/sendevents/internal/kafka"
)

// ErrorKind classifies why a request could not publish its event.
type ErrorKind int

const (
	// BrokerFailure covers connection, send and client side failures.
	BrokerFailure ErrorKind = iota
	ConfigurationMissing
	MessageTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationMissing:
		return "ConfigurationMissing"
	case MessageTooLarge:
		return "MessageTooLarge"
	default:
		return "BrokerFailure"
	}
}

// StatusCode maps a kind to the response status. Only missing configuration
// is reported to the caller; every other kind is an opaque 500.
func (k ErrorKind) StatusCode() int {
	if k == ConfigurationMissing {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, config.ErrConfigurationMissing):
		return ConfigurationMissing
	case errors.Is(err, kafka.ErrMessageTooLarge):
		return MessageTooLarge
	default:
		return BrokerFailure
	}
}
