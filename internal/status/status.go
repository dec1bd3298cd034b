package status

import (
	"encoding/json"
	"time"

	"github.com/DIMO-Network/shared"
	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

// SubmittedMsg reports a signed transaction accepted by the chain node.
type SubmittedMsg struct {
	ID     string
	TranID string
}

// ConfirmedMsg reports a submitted transaction reaching a terminal state.
type ConfirmedMsg struct {
	ID         string
	TranID     string
	Successful bool
	EpochNum   string
}

//go:generate mockgen -source status.go -destination ../mocks/status_producer.go -package mocks
type Producer interface {
	Submitted(msg *SubmittedMsg)
	Confirmed(msg *ConfirmedMsg)
}

type kafkaProducer struct {
	kp     sarama.SyncProducer
	topic  string
	logger *zerolog.Logger
}

type tx struct {
	TranID     string `json:"tranId"`
	Successful *bool  `json:"successful,omitempty"`
	EpochNum   string `json:"epochNum,omitempty"`
}

// Just using the same struct for both event types. Lazy.
type ceData struct {
	RequestID   string `json:"requestId"`
	Type        string `json:"type"`
	Transaction tx     `json:"transaction"`
}

func (p *kafkaProducer) Submitted(msg *SubmittedMsg) {
	event := shared.CloudEvent[ceData]{
		ID:          ksuid.New().String(),
		Source:      "transaction-signer",
		Subject:     msg.ID,
		SpecVersion: "1.0",
		Time:        time.Now(),
		Type:        "zone.dimo.transaction.signature.event",
		Data: ceData{
			RequestID: msg.ID,
			Type:      "Submitted",
			Transaction: tx{
				TranID: msg.TranID,
			},
		},
	}

	bs, err := json.Marshal(event)
	if err != nil {
		p.logger.Err(err).Msg("Couldn't marshal submitted message.")
		return
	}

	_, _, err = p.kp.SendMessage(
		&sarama.ProducerMessage{
			Topic: p.topic,
			Value: sarama.ByteEncoder(bs),
		},
	)

	if err != nil {
		p.logger.Err(err).Str("requestId", msg.ID).Str("type", "Submitted").Msg("Failed sending status update.")
	}
}

func (p *kafkaProducer) Confirmed(msg *ConfirmedMsg) {
	event := shared.CloudEvent[ceData]{
		ID:          ksuid.New().String(),
		Source:      "transaction-signer",
		Subject:     msg.ID,
		SpecVersion: "1.0",
		Time:        time.Now(),
		Type:        "zone.dimo.transaction.signature.event",
		Data: ceData{
			RequestID: msg.ID,
			Type:      "Confirmed",
			Transaction: tx{
				TranID:     msg.TranID,
				Successful: &msg.Successful,
				EpochNum:   msg.EpochNum,
			},
		},
	}

	bs, err := json.Marshal(event)
	if err != nil {
		p.logger.Err(err).Msg("Couldn't marshal confirmed message.")
		return
	}

	_, _, err = p.kp.SendMessage(
		&sarama.ProducerMessage{
			Topic: p.topic,
			Value: sarama.ByteEncoder(bs),
		},
	)

	if err != nil {
		p.logger.Err(err).Str("requestId", msg.ID).Str("type", "Confirmed").Msg("Failed sending status update.")
	}
}

// NewKafka returns a Producer writing CloudEvents to the given topic.
func NewKafka(topic string, client sarama.Client, logger *zerolog.Logger) (Producer, error) {
	kp, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		return nil, err
	}

	return &kafkaProducer{kp: kp, topic: topic, logger: logger}, nil
}
