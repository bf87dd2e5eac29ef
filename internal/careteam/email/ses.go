package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/careteamhq/careteam/pkg/slogx"
)

// SESMailer sends invitation emails through Amazon SES v2.
type SESMailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

// NewSESMailer loads the default AWS credential chain for the given
// region and returns a mailer sending from fromEmail.
func NewSESMailer(ctx context.Context, region, fromEmail, fromName string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESMailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (m *SESMailer) SendInvitation(ctx context.Context, msg InvitationEmail) error {
	subject := fmt.Sprintf("%s invited you to join %s's care team", msg.InviterName, msg.ClientName)

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(renderInvitationHTML(msg)),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(renderInvitationText(msg)),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send invitation email to %s: %w", msg.To, err)
	}

	log := slogx.FromContext(ctx)
	if out.MessageId != nil {
		log = log.With(slog.String("ses_message_id", *out.MessageId))
	}
	log.Info("invitation email sent", slog.String("to", msg.To))
	return nil
}
