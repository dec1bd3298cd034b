package consumer

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/DIMO-Network/shared"
	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/DIMO-Network/transaction-signer/internal/address"
	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/metrics"
	"github.com/DIMO-Network/transaction-signer/internal/provider"
	"github.com/DIMO-Network/transaction-signer/internal/status"
	"github.com/DIMO-Network/transaction-signer/internal/storage"
	"github.com/DIMO-Network/transaction-signer/internal/wallet"
)

var requestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "transaction_signer",
		Subsystem: "consumer",
		Name:      "requests_total",
	},
)

var requestErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "transaction_signer",
		Subsystem: "consumer",
		Name:      "request_errors_total",
	},
)

// defaultGasLimit covers a plain transfer with no code or data attached.
const defaultGasLimit = 50

// SignRequestData is the payload of an incoming signing request event.
type SignRequestData struct {
	ID       string   `json:"id"`
	To       string   `json:"to"`
	Amount   *big.Int `json:"amount"`
	GasPrice *big.Int `json:"gasPrice,omitempty"`
	GasLimit uint64   `json:"gasLimit,omitempty"`
	Code     string   `json:"code,omitempty"`
	Data     string   `json:"data,omitempty"`

	// SignerPublicKey selects the wallet account that must sign. Empty
	// falls back to the wallet default.
	SignerPublicKey string `json:"signerPublicKey,omitempty"`

	// Nonce zero lets the wallet assign the next one.
	Nonce uint64 `json:"nonce,omitempty"`
}

type consumer struct {
	logger   *zerolog.Logger
	wallet   *wallet.Wallet
	provider provider.Provider
	store    storage.Storage
	producer status.Producer
	version  uint32
}

func (c *consumer) Setup(sarama.ConsumerGroupSession) error { return nil }

func (c *consumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (c *consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg := <-claim.Messages():
			requestsTotal.Inc()
			logger := c.logger.With().Int32("partition", msg.Partition).Int64("offset", msg.Offset).Logger()

			var event shared.CloudEvent[SignRequestData]
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Err(err).Msg("Couldn't parse request, skipping.")
				session.MarkMessage(msg, "")
				continue
			}

			if err := c.process(session.Context(), &logger, event.Data); err != nil {
				requestErrorsTotal.Inc()
				logger.Err(err).Str("requestId", event.Data.ID).Msg("Error signing transaction.")
			}

			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *consumer) process(ctx context.Context, logger *zerolog.Logger, data SignRequestData) error {
	id := data.ID
	if id == "" {
		id = ksuid.New().String()
	}

	logger.Info().Str("requestId", id).Str("toAddress", data.To).Msg("Got signing request.")

	gasPrice := data.GasPrice
	if gasPrice == nil {
		min, err := c.provider.GetMinimumGasPrice(ctx)
		if err != nil {
			return err
		}
		gasPrice = min
	}

	amount := data.Amount
	if amount == nil {
		amount = big.NewInt(0)
	}

	gasLimit := data.GasLimit
	if gasLimit == 0 {
		gasLimit = defaultGasLimit
	}

	tx := &chain.Transaction{
		Version:  c.version,
		Nonce:    data.Nonce,
		ToAddr:   data.To,
		Amount:   amount,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		Code:     data.Code,
		Data:     data.Data,
		PubKey:   data.SignerPublicKey,
	}

	signed, err := c.wallet.SignTransaction(ctx, tx)
	if err != nil {
		return err
	}

	res, err := c.provider.CreateTransaction(ctx, signed)
	if err != nil {
		return err
	}

	logger.Info().Str("requestId", id).Str("tranId", res.TranID).Msg("Transaction submitted.")
	metrics.SubmittedTotal.Inc()

	from, err := address.FromPublicKey(signed.PubKey)
	if err != nil {
		return err
	}

	err = c.store.New(&storage.Transaction{
		ID:     id,
		TranID: res.TranID,
		From:   from,
		To:     signed.ToAddr,
		Nonce:  signed.Nonce,
		Amount: signed.Amount,
	})
	if err != nil {
		return err
	}

	c.producer.Submitted(&status.SubmittedMsg{ID: id, TranID: res.TranID})

	return nil
}

// New consumes signing requests from the topic until ctx is canceled.
func New(ctx context.Context, name string, topic string, kafkaClient sarama.Client, logger *zerolog.Logger, w *wallet.Wallet, prov provider.Provider, store storage.Storage, producer status.Producer, version uint32) error {
	group, err := sarama.NewConsumerGroupFromClient(name, kafkaClient)
	if err != nil {
		return err
	}

	consumer := &consumer{
		logger:   logger,
		wallet:   w,
		provider: prov,
		store:    store,
		producer: producer,
		version:  version,
	}

	for {
		err := group.Consume(ctx, []string{topic}, consumer)
		if err != nil {
			logger.Err(err).Msg("Consumer group session did not terminate gracefully.")
		}
		if ctx.Err() != nil {
			// Context canceled, so quit.
			return nil
		}
	}
}
