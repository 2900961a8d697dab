package internal

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

type Enqueuer struct {
	client sqsiface.SQSAPI
	delay  int64

	mu        sync.Mutex
	queueURLs map[string]string
}

// SendMsg marshals msg as JSON and sends it to the named queue. Queue URLs are
// resolved once per container.
func (e *Enqueuer) SendMsg(ctx context.Context, msg interface{}, queue string) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	queueURL, err := e.queueURL(ctx, queue)
	if err != nil {
		return err
	}

	_, err = e.client.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		DelaySeconds: aws.Int64(e.delay),
		MessageBody:  aws.String(string(msgBytes)),
		QueueUrl:     aws.String(queueURL),
	})
	return err
}

func (e *Enqueuer) queueURL(ctx context.Context, queue string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if url, ok := e.queueURLs[queue]; ok {
		return url, nil
	}

	out, err := e.client.GetQueueUrlWithContext(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return "", err
	}

	e.queueURLs[queue] = aws.StringValue(out.QueueUrl)
	return e.queueURLs[queue], nil
}

func NewEnqueuer(client sqsiface.SQSAPI, delaySeconds int64) *Enqueuer {
	return &Enqueuer{
		client:    client,
		delay:     delaySeconds,
		queueURLs: map[string]string{},
	}
}
