package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	inputs      []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

type failingChannel struct{ name string }

func (f failingChannel) Name() string { return f.name }

func (f failingChannel) Post(ctx context.Context, t Ticket) error {
	return errors.New("channel down")
}

func TestEscalate_SNS(t *testing.T) {
	mock := &MockSNSService{}
	svc := NewService([]Channel{NewSNSChannel(mock, "arn:aws:sns:us-east-1:123456789012:agents")}, nil, zaptest.NewLogger(t))

	ticket, err := svc.Escalate(context.Background(), " Can I bring my cat? ", "I'm not sure.")
	require.NoError(t, err)
	require.Len(t, mock.inputs, 1)

	in := mock.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:agents", *in.TopicArn)
	assert.Contains(t, *in.Message, "Question: Can I bring my cat?")
	assert.Contains(t, *in.Message, "Assistant draft: I'm not sure.")
	assert.Equal(t, ticket.ID.String(), *in.MessageAttributes["ticket_id"].StringValue)
	assert.Equal(t, StatusOpen, ticket.Status)
}

func TestEscalate_Webhook(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := NewService([]Channel{NewWebhookChannel(srv.URL)}, nil, zaptest.NewLogger(t))
	ticket, err := svc.Escalate(context.Background(), "Where is my refund?", "")
	require.NoError(t, err)
	assert.Equal(t, ticket.ID.String(), got.TicketID)
	assert.Equal(t, "Where is my refund?", got.Question)
	assert.Contains(t, got.Text, "(no answer generated)")
}

func TestEscalate_AnyChannelIsEnough(t *testing.T) {
	mock := &MockSNSService{}
	svc := NewService([]Channel{failingChannel{"inbox"}, NewSNSChannel(mock, "arn:topic")}, nil, zaptest.NewLogger(t))

	_, err := svc.Escalate(context.Background(), "q", "a")
	assert.NoError(t, err)
	assert.Len(t, mock.inputs, 1)
}

func TestEscalate_AllChannelsFail(t *testing.T) {
	mock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer webhook.Close()

	svc := NewService([]Channel{NewSNSChannel(mock, "arn:topic"), NewWebhookChannel(webhook.URL)}, nil, zaptest.NewLogger(t))
	ticket, err := svc.Escalate(context.Background(), "q", "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndelivered)
	assert.True(t, strings.Contains(err.Error(), "throttled"))
	assert.True(t, strings.Contains(err.Error(), "unexpected status 500"))
	assert.NotEmpty(t, ticket.ID.String())
}

func TestEscalate_NoChannels(t *testing.T) {
	svc := NewService(nil, nil, zaptest.NewLogger(t))
	_, err := svc.Escalate(context.Background(), "q", "a")
	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestFormat(t *testing.T) {
	ticket := NewTicket("Q?", "A.", time.Date(2024, 7, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600)))
	out := Format(ticket)
	assert.Contains(t, out, "Received: 2024-07-01T08:00:00Z")
	assert.Contains(t, out, "Ticket: "+ticket.ID.String())
}
