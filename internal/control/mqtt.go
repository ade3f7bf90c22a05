package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/scene"
)

const connectTimeout = 10 * time.Second

// ErrConnectTimeout is returned when the broker does not answer in time.
var ErrConnectTimeout = errors.New("mqtt connect timed out")

// Bridge subscribes to a command topic and posts every valid message to
// the scene.
type Bridge struct {
	client mqtt.Client
	scene  Scene
	topic  string
	log    *zap.Logger
}

// NewBridge prepares a client for cfg. It does not connect.
func NewBridge(cfg config.MQTTConfig, sc Scene, log *zap.Logger) *Bridge {
	b := &Bridge{
		scene: sc,
		topic: cfg.Topic,
		log:   logger.OrNop(log),
	}

	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(b.handleOnConnect).
		SetConnectionLostHandler(b.handleConnectionLost)
	b.client = mqtt.NewClient(options)
	return b
}

// Connect connects to the broker. Subscription happens on every
// (re)connect.
func (b *Bridge) Connect() error {
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return ErrConnectTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

// Close disconnects, waiting briefly for in-flight work.
func (b *Bridge) Close() {
	if b.client.IsConnected() {
		b.client.Disconnect(250)
	}
}

func (b *Bridge) handleOnConnect(client mqtt.Client) {
	b.log.Info("mqtt connected", zap.String("topic", b.topic))
	token := client.Subscribe(b.topic, 1, b.handleMessage)
	if !token.WaitTimeout(connectTimeout) {
		b.log.Warn("mqtt subscribe timed out", zap.String("topic", b.topic), zap.Duration("timeout", connectTimeout))
		return
	}
	if err := token.Error(); err != nil {
		b.log.Error("mqtt subscribe failed", zap.String("topic", b.topic), zap.Error(err))
	}
}

func (b *Bridge) handleConnectionLost(_ mqtt.Client, err error) {
	b.log.Warn("mqtt connection lost", zap.Error(err))
}

func (b *Bridge) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	b.log.Debug("mqtt message",
		zap.Uint16("id", msg.MessageID()),
		zap.String("topic", msg.Topic()),
		zap.ByteString("payload", msg.Payload()),
	)

	var message CommandMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		b.log.Warn("ignoring malformed mqtt command", zap.Error(err))
		return
	}
	kind, err := scene.ParseCommandKind(message.Command)
	if err != nil || kind == scene.CommandMove {
		b.log.Warn("ignoring unsupported mqtt command", zap.String("command", message.Command))
		return
	}
	b.scene.Post(scene.Command{Kind: kind})
}
