// Package config loads the four environment variables spec.md §6 names,
// with local-dev defaults when unset.
//
// Grounded on 0xtitan6-polymarket-mm/internal/config/config.go's
// viper.New() + AutomaticEnv() + struct-unmarshal shape.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the ingress/egress broker coordinates of spec.md §6.
type Config struct {
	KafkaBrokers       string `mapstructure:"kafka_brokers"`
	KafkaGroupID       string `mapstructure:"kafka_group_id"`
	KafkaConsumerTopic string `mapstructure:"kafka_consumer_topic"`
	KafkaProducerTopic string `mapstructure:"kafka_producer_topic"`
}

// Load reads KAFKA_BROKERS, KAFKA_GROUP_ID, KAFKA_CONSUMER_TOPIC, and
// KAFKA_PRODUCER_TOPIC from the environment, defaulting to local
// development values when unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KAFKA")
	v.AutomaticEnv()

	v.SetDefault("brokers", "localhost:9092")
	v.SetDefault("group_id", "matchcore")
	v.SetDefault("consumer_topic", "orders")
	v.SetDefault("producer_topic", "events")

	cfg := &Config{
		KafkaBrokers:       v.GetString("brokers"),
		KafkaGroupID:       v.GetString("group_id"),
		KafkaConsumerTopic: v.GetString("consumer_topic"),
		KafkaProducerTopic: v.GetString("producer_topic"),
	}

	if cfg.KafkaBrokers == "" {
		return nil, fmt.Errorf("config: KAFKA_BROKERS must not be empty")
	}
	return cfg, nil
}
