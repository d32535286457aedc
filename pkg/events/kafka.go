package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/utils"
)

// KafkaPublisher writes events as JSON, keyed by user id so one user's events
// stay ordered within a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg settings.Kafka) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// NewSaramaConfig maps settings onto a producer config. Zero values keep
// sarama's defaults.
func NewSaramaConfig(cfg settings.Kafka) *sarama.Config {
	sc := sarama.NewConfig()
	sc.ClientID = "codelens"
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Partitioner = sarama.NewHashPartitioner

	if cfg.MaxRetries > 0 {
		sc.Producer.Retry.Max = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		sc.Producer.Retry.Backoff = utils.ToDurationMs(cfg.RetryBackoff)
	}
	if cfg.Timeout > 0 {
		sc.Producer.Timeout = utils.ToDuration(cfg.Timeout)
		sc.Net.DialTimeout = utils.ToDuration(cfg.Timeout)
	}
	if cfg.FlushFrequency > 0 {
		sc.Producer.Flush.Frequency = utils.ToDurationMs(cfg.FlushFrequency)
	}
	if cfg.FlushBytes > 0 {
		sc.Producer.Flush.Bytes = cfg.FlushBytes
	}
	if cfg.MaxMessageBytes > 0 {
		sc.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	}
	return sc
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(ErrPublishFailed, err.Error())
	}

	b, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.UserID, 10)),
		Value: sarama.ByteEncoder(b),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return errors.Wrapf(ErrPublishFailed, "%s: %v", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
