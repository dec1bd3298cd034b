package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/DIMO-Network/shared"
	"github.com/IBM/sarama"
	"github.com/burdiyan/kafkautil"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/config"
	"github.com/DIMO-Network/transaction-signer/internal/consumer"
	"github.com/DIMO-Network/transaction-signer/internal/metrics"
	"github.com/DIMO-Network/transaction-signer/internal/provider"
	"github.com/DIMO-Network/transaction-signer/internal/status"
	"github.com/DIMO-Network/transaction-signer/internal/storage"
	"github.com/DIMO-Network/transaction-signer/internal/ticker"
	"github.com/DIMO-Network/transaction-signer/internal/wallet"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "transaction-signer").Logger()

	settings, err := shared.LoadConfig[*config.Settings]("settings.yaml")
	if err != nil {
		logger.Fatal().Msg("Couldn't load settings.")
	}

	logger.Info().Uint32("chainId", settings.ChainID).Msg("Loaded settings.")

	ctx, cancel := context.WithCancel(context.Background())

	prov := provider.NewHTTP(settings.RPCURL)

	w := wallet.New(prov)
	if settings.WalletPrivateKeys != "" {
		for _, key := range strings.Split(settings.WalletPrivateKeys, ",") {
			if _, err := w.AddByPrivateKey(key); err != nil {
				logger.Fatal().Err(err).Msg("Couldn't load wallet private key.")
			}
		}
	}
	if settings.WalletMnemonic != "" {
		for i := uint32(0); i < settings.MnemonicAccountCount; i++ {
			if _, err := w.AddByMnemonic(settings.WalletMnemonic, i); err != nil {
				logger.Fatal().Err(err).Uint32("index", i).Msg("Couldn't derive wallet account.")
			}
		}
	}
	if w.DefaultAccount() == nil {
		logger.Fatal().Msg("No wallet accounts configured.")
	}

	logger.Info().Strs("addresses", w.Addresses()).Str("default", w.DefaultAccount().Address()).Msg("Wallet loaded.")

	var store storage.Storage
	if settings.InMemoryDB {
		store = storage.NewMemStorage()
	} else {
		store, err = storage.NewLevelStorage(settings.LevelDBPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open transaction store.")
		}
	}
	defer store.Close()

	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.Return.Successes = true
	kafkaConfig.Producer.Partitioner = kafkautil.NewJVMCompatiblePartitioner

	kafkaClient, err := sarama.NewClient(strings.Split(settings.KafkaServers, ","), kafkaConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Kafka client.")
	}

	sprod, err := status.NewKafka(settings.TransactionStatusTopic, kafkaClient, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Kafka transaction status producer.")
	}

	version := chain.Version(settings.ChainID, settings.MsgVersion)

	go func() {
		consumer.New(ctx, settings.ConsumerGroup, settings.SignRequestTopic, kafkaClient, &logger, w, prov, store, sprod, version)
	}()

	watcher := ticker.New(&logger, store, prov, sprod)

	pollInterval := time.Duration(settings.PollIntervalSeconds) * time.Second
	if pollInterval == 0 {
		pollInterval = 10 * time.Second
	}

	go func() {
		for range time.NewTicker(pollInterval).C {
			metrics.TicksTotal.Inc()
			if err := watcher.Tick(ctx); err != nil {
				metrics.TickErrorsTotal.Inc()
				logger.Err(err).Msg("Error checking submitted transactions.")
			}
		}
	}()

	serveMonitoring(settings.MonitoringPort, &logger)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, os.Interrupt)

	sig := <-sigterm
	logger.Info().Str("signal", sig.String()).Msg("Received signal, terminating.")

	cancel()
}

func serveMonitoring(port string, logger *zerolog.Logger) *fiber.App {
	logger.Info().Str("port", port).Msg("Starting monitoring web server.")

	monApp := fiber.New(fiber.Config{DisableStartupMessage: true})

	monApp.Get("/", func(c *fiber.Ctx) error { return nil })
	monApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		if err := monApp.Listen(":" + port); err != nil {
			logger.Fatal().Err(err).Str("port", port).Msg("Monitoring web server failed.")
		}
	}()

	return monApp
}
