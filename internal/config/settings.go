package config

type Settings struct {
	// MonitoringPort is the port on which we run the health check endpoint and
	// serve Prometheus metrics.
	MonitoringPort string `yaml:"MONITORING_PORT"`

	// KafkaServers is a comma-separated list of Kafka bootstrap servers.
	// We typically only specify one.
	KafkaServers string `yaml:"KAFKA_SERVERS"`

	// ConsumerGroup is the name of the consumer group.
	ConsumerGroup string `yaml:"CONSUMER_GROUP"`

	// SignRequestTopic is the name of the topic from which the service
	// receives transaction signing requests.
	SignRequestTopic string `yaml:"SIGN_REQUEST_TOPIC"`

	// TransactionStatusTopic is the name of the topic onto which the service
	// places updates about submitted transactions.
	TransactionStatusTopic string `yaml:"TRANSACTION_STATUS_TOPIC"`

	// RPCURL is the URL of the JSON-RPC endpoint to use for chain
	// interactions.
	RPCURL string `yaml:"RPC_URL"`

	// ChainID identifies the target network. It ends up in the upper half
	// of the transaction version field.
	ChainID uint32 `yaml:"CHAIN_ID"`

	// MsgVersion is the transaction message version, normally 1.
	MsgVersion uint32 `yaml:"MSG_VERSION"`

	// WalletPrivateKeys is a comma-separated list of hex-encoded private
	// keys for the secp256k1 curve to load into the wallet. The first one
	// becomes the default signer. This should never be used in production.
	WalletPrivateKeys string `yaml:"WALLET_PRIVATE_KEYS"`

	// WalletMnemonic is a BIP-39 phrase to derive signing accounts from.
	WalletMnemonic string `yaml:"WALLET_MNEMONIC"`

	// MnemonicAccountCount is how many accounts to derive from
	// WalletMnemonic, starting at index 0.
	MnemonicAccountCount uint32 `yaml:"MNEMONIC_ACCOUNT_COUNT"`

	InMemoryDB bool `yaml:"IN_MEMORY_DB"`

	// LevelDBPath is the directory holding the submitted-transaction index.
	// Only used if InMemoryDB is false.
	LevelDBPath string `yaml:"LEVELDB_PATH"`

	// PollIntervalSeconds is how often submitted transactions are checked
	// for finality.
	PollIntervalSeconds int `yaml:"POLL_INTERVAL_SECONDS"`
}
