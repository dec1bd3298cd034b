package ticker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/friendsofgo/errors"
	"github.com/rs/zerolog"

	"github.com/DIMO-Network/transaction-signer/internal/metrics"
	"github.com/DIMO-Network/transaction-signer/internal/provider"
	"github.com/DIMO-Network/transaction-signer/internal/status"
	"github.com/DIMO-Network/transaction-signer/internal/storage"
)

// Watcher polls the chain for the fate of submitted transactions.
type Watcher struct {
	logger   *zerolog.Logger
	store    storage.Storage
	provider provider.Provider
	prod     status.Producer
}

func New(logger *zerolog.Logger, store storage.Storage, prov provider.Provider, prod status.Producer) *Watcher {
	return &Watcher{
		logger:   logger,
		store:    store,
		provider: prov,
		prod:     prod,
	}
}

// Tick checks every tracked transaction once. Transactions the node cannot
// find yet stay tracked for the next round; ones with a receipt produce a
// Confirmed event and are dropped from the store.
func (w *Watcher) Tick(ctx context.Context) error {
	txes, err := w.store.List()
	if err != nil {
		return fmt.Errorf("failed to retrieve monitored transactions: %w", err)
	}

	for _, tx := range txes {
		logger := w.logger.With().Str("id", tx.ID).Str("tranId", tx.TranID).Logger()

		res, err := w.provider.GetTransaction(ctx, tx.TranID)
		if err != nil {
			var rpcErr *provider.RPCError
			if errors.As(err, &rpcErr) {
				// The node doesn't have the transaction in a block yet.
				logger.Debug().Int("code", rpcErr.Code).Msg("Transaction not finalized yet.")
				continue
			}
			logger.Err(err).Msg("Failed to look up transaction.")
			continue
		}

		if res.Receipt.Success {
			logger.Info().Str("epoch", res.Receipt.EpochNum).Msg("Transaction confirmed.")
		} else {
			logger.Info().Str("epoch", res.Receipt.EpochNum).Msg("Transaction failed on chain.")
		}
		metrics.ConfirmedTotal.WithLabelValues(strconv.FormatBool(res.Receipt.Success)).Inc()

		w.prod.Confirmed(&status.ConfirmedMsg{
			ID:         tx.ID,
			TranID:     tx.TranID,
			Successful: res.Receipt.Success,
			EpochNum:   res.Receipt.EpochNum,
		})

		if err := w.store.Remove(tx.ID); err != nil {
			logger.Err(err).Msg("Failed to remove transaction from store.")
		}
	}

	return nil
}
