// Package notifications delivers alert events to people (SMS, email) and
// to connected dashboards (websocket). Delivery is best-effort: a failed
// channel is logged and reported to the caller, never fatal to the
// triggering operation.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// Message is one notification payload.
type Message struct {
	Subject string
	Body    string
}

// Channel delivers a message to a single recipient.
type Channel interface {
	Send(ctx context.Context, recipient string, msg Message) error
}

// SMSChannel sends SMS through SNS.
type SMSChannel struct {
	client   *sns.Client
	senderID string
	logger   *zap.Logger
}

// NewSMSChannel creates a new SMS channel
func NewSMSChannel(client *sns.Client, senderID string, logger *zap.Logger) *SMSChannel {
	return &SMSChannel{
		client:   client,
		senderID: senderID,
		logger:   logger,
	}
}

// Send publishes an SMS to a phone number. The body carries an alert
// timestamp prefix like the original alerting integration did.
func (c *SMSChannel) Send(ctx context.Context, phoneNumber string, msg Message) error {
	body := fmt.Sprintf("[Pothole Alert - %s] %s", time.Now().Format("2006-01-02 15:04:05"), msg.Body)

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(body),
	}
	if c.senderID != "" {
		input.MessageAttributes = map[string]snsTypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(c.senderID),
			},
		}
	}

	out, err := c.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	c.logger.Info("SMS alert sent",
		zap.String("phone_number", phoneNumber),
		zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}

// EmailChannel sends email through SESv2.
type EmailChannel struct {
	client *sesv2.Client
	from   string
	logger *zap.Logger
}

// NewEmailChannel creates a new email channel
func NewEmailChannel(client *sesv2.Client, from string, logger *zap.Logger) *EmailChannel {
	return &EmailChannel{
		client: client,
		from:   from,
		logger: logger,
	}
}

// Send delivers a plain-text alert email.
func (c *EmailChannel) Send(ctx context.Context, address string, msg Message) error {
	if c.from == "" {
		return fmt.Errorf("email channel not configured: missing sender address")
	}

	_, err := c.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.from),
		Destination: &sesTypes.Destination{
			ToAddresses: []string{address},
		},
		Content: &sesTypes.EmailContent{
			Simple: &sesTypes.Message{
				Subject: &sesTypes.Content{Data: aws.String(msg.Subject)},
				Body: &sesTypes.Body{
					Text: &sesTypes.Content{Data: aws.String(msg.Body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info("Email alert sent", zap.String("address", address))
	return nil
}
