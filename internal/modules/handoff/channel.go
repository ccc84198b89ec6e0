package handoff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Channel delivers a ticket to somewhere a human agent will see it.
type Channel interface {
	Name() string
	Post(ctx context.Context, t Ticket) error
}

// WebhookChannel posts tickets as JSON to a live-chat panel.
type WebhookChannel struct {
	url    string
	client *http.Client
}

func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{url: url, client: &http.Client{Timeout: 15 * time.Second}}
}

func (w *WebhookChannel) Name() string { return "webhook" }

type webhookPayload struct {
	TicketID    string    `json:"ticket_id"`
	Question    string    `json:"question"`
	ModelAnswer string    `json:"model_answer,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w *WebhookChannel) Post(ctx context.Context, t Ticket) error {
	body, err := json.Marshal(webhookPayload{
		TicketID:    t.ID.String(),
		Question:    t.Question,
		ModelAnswer: t.ModelAnswer,
		Text:        Format(t),
		CreatedAt:   t.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("webhook: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// SNSPublisher is the part of the SNS client the channel needs.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSChannel fans tickets out to an SNS topic (agent paging, email, chat bridges).
type SNSChannel struct {
	client   SNSPublisher
	topicARN string
}

func NewSNSChannel(client SNSPublisher, topicARN string) *SNSChannel {
	return &SNSChannel{client: client, topicARN: topicARN}
}

func (s *SNSChannel) Name() string { return "sns" }

func (s *SNSChannel) Post(ctx context.Context, t Ticket) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String("Live agent requested"),
		Message:  aws.String(Format(t)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"ticket_id": {DataType: aws.String("String"), StringValue: aws.String(t.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
