package mqttpub

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/solarkit/go-axpert/entities"
)

const (
	defaultClientID       = "go-axpert"
	defaultTopicPrefix    = "axpert"
	defaultConnectTimeout = 10 * time.Second
)

// Options configures the broker connection and publish defaults.
// Broker takes the usual tcp://host:port form.
type Options struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	ConnectTimeout time.Duration
	QoS            byte
	Retain         bool
}

// Publisher pushes query results to an MQTT broker, one retained-or-not
// JSON document per topic.
type Publisher struct {
	client paho.Client
	opts   Options
	log    zerolog.Logger
}

// New builds a publisher for the given broker. It does not connect;
// call Connect before publishing.
func New(opts Options, log zerolog.Logger) *Publisher {
	if opts.ClientID == "" {
		opts.ClientID = defaultClientID
	}
	if opts.TopicPrefix == "" {
		opts.TopicPrefix = defaultTopicPrefix
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}

	po := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetCleanSession(true)
	if opts.Username != "" {
		po.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		po.SetPassword(opts.Password)
	}

	return &Publisher{client: paho.NewClient(po), opts: opts, log: log}
}

// Connect establishes the broker session within the configured timeout.
func (p *Publisher) Connect() error {
	p.log.Info().Str("broker", p.opts.Broker).Str("client_id", p.opts.ClientID).Msg("connecting to mqtt broker")
	tok := p.client.Connect()
	if !tok.WaitTimeout(p.opts.ConnectTimeout) {
		return fmt.Errorf("mqtt connect timeout after %s", p.opts.ConnectTimeout)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

// Disconnect ends the broker session, allowing up to the given number
// of milliseconds for in-flight messages to complete.
func (p *Publisher) Disconnect(quiesceMs uint) {
	p.client.Disconnect(quiesceMs)
}

// PublishResult publishes the flattened result of one query as a JSON
// document on <prefix>/<query>.
func (p *Publisher) PublishResult(query string, res *entities.Result) error {
	payload, err := json.Marshal(Flatten(res.Map(), "."))
	if err != nil {
		return fmt.Errorf("marshal %s result: %w", query, err)
	}

	topic := p.opts.TopicPrefix + "/" + query
	p.log.Debug().Str("topic", topic).Int("bytes", len(payload)).Msg("publishing result")

	tok := p.client.Publish(topic, p.opts.QoS, p.opts.Retain, payload)
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
