// Package publisher pushes dashboard summaries to an MQTT broker.
package publisher

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	publishQoS     = 1
)

// ErrPublishTimeout is returned when the broker does not acknowledge in time.
var ErrPublishTimeout = errors.New("publish timed out")

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// MQTTPublisher publishes retained QoS 1 messages through a paho client.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker.
func NewMQTTPublisher(opts MQTTOptions) (*MQTTPublisher, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker is required")
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.Broker, err)
	}

	log.WithField("broker", opts.Broker).Info("Connected to MQTT broker")
	return &MQTTPublisher{client: client}, nil
}

// Publish sends payload as a retained message and waits for the broker ack.
func (p *MQTTPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, publishQoS, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}

// Close disconnects, allowing in-flight messages a short grace period.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
