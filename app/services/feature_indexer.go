package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const FeatureExtractionQueue = "feature_extraction"

// FeatureIndexer starts an extraction run and returns a status message for
// the admin page.
type FeatureIndexer interface {
	Trigger(ctx context.Context) (string, error)
}

type FeatureExtractionJob struct {
	productRepo repositories.ProductRepositoryImpl
	featureRepo repositories.ProductFeatureRepositoryImpl
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewFeatureExtractionJob(productRepo repositories.ProductRepositoryImpl, featureRepo repositories.ProductFeatureRepositoryImpl, log logrus.FieldLogger) *FeatureExtractionJob {
	return &FeatureExtractionJob{productRepo: productRepo, featureRepo: featureRepo, log: log, now: time.Now}
}

// Run records a placeholder feature row for every active product. No vector
// is computed yet.
func (j *FeatureExtractionJob) Run(ctx context.Context) (int, error) {
	products, err := j.productRepo.ListActive(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "could not list products for extraction")
	}

	indexed := 0
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		feature := &models.ProductFeature{
			ProductID:   p.ID,
			ImageURL:    p.ImageURL,
			Status:      models.FeatureStatusPlaceholder,
			ExtractedAt: j.now(),
		}
		if err := j.featureRepo.Upsert(ctx, feature); err != nil {
			return indexed, errors.Wrapf(err, "could not index product %s", p.ID)
		}
		indexed++
	}

	j.log.WithField("indexed", indexed).Info("FeatureExtractionJob: run finished")
	return indexed, nil
}

// InlineIndexer runs the job inside the request.
type InlineIndexer struct {
	job *FeatureExtractionJob
}

func NewInlineIndexer(job *FeatureExtractionJob) *InlineIndexer {
	return &InlineIndexer{job: job}
}

func (i *InlineIndexer) Trigger(ctx context.Context) (string, error) {
	indexed, err := i.job.Run(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Đã trích xuất đặc trưng cho %d sản phẩm.", indexed), nil
}

type ExtractionMessage struct {
	JobID       string    `json:"job_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// AMQPIndexer hands the job to the image-worker process through RabbitMQ.
type AMQPIndexer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     logrus.FieldLogger
}

func NewAMQPIndexer(url string, log logrus.FieldLogger) (*AMQPIndexer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareExtractionQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Infof("AMQPIndexer: connected, queue %s declared", FeatureExtractionQueue)
	return &AMQPIndexer{conn: conn, channel: ch, log: log}, nil
}

func declareExtractionQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		FeatureExtractionQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", FeatureExtractionQueue, err)
	}
	return nil
}

func (a *AMQPIndexer) Trigger(ctx context.Context) (string, error) {
	msg := ExtractionMessage{JobID: uuid.New().String(), RequestedAt: time.Now()}
	body, err := json.Marshal(msg)
	if err != nil {
		return "", errors.Wrap(err, "could not encode extraction job")
	}

	err = a.channel.Publish(
		"",
		FeatureExtractionQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.JobID,
			Body:         body,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "could not publish extraction job")
	}

	a.log.WithField("job", msg.JobID).Info("AMQPIndexer: extraction job queued")
	return fmt.Sprintf("Đã đưa yêu cầu trích xuất đặc trưng vào hàng đợi (mã %s).", msg.JobID[:8]), nil
}

func (a *AMQPIndexer) Close() error {
	var errs []error
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing RabbitMQ indexer: %v", errs)
	}
	return nil
}

// ConsumeExtractionJobs runs the job once per queued message until ctx is
// cancelled. Messages are processed one at a time.
func ConsumeExtractionJobs(ctx context.Context, url string, job *FeatureExtractionJob, log logrus.FieldLogger) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := declareExtractionQueue(ch); err != nil {
		return err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := ch.Consume(FeatureExtractionQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", FeatureExtractionQueue, err)
	}

	log.Infof("ConsumeExtractionJobs: waiting for jobs on %s", FeatureExtractionQueue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			var msg ExtractionMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				log.Warnf("ConsumeExtractionJobs: dropping malformed message: %v", err)
				d.Nack(false, false)
				continue
			}
			indexed, err := job.Run(ctx)
			if err != nil {
				log.WithField("job", msg.JobID).Errorf("ConsumeExtractionJobs: job failed: %v", err)
				d.Nack(false, false)
				continue
			}
			log.WithFields(logrus.Fields{"job": msg.JobID, "indexed": indexed}).Info("ConsumeExtractionJobs: job done")
			d.Ack(false)
		}
	}
}
