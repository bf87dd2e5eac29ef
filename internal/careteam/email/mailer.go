package email

import (
	"context"
	"log/slog"

	"github.com/careteamhq/careteam/pkg/slogx"
)

// InvitationEmail carries everything needed to render an invitation
// message. InvitationLink embeds the raw invite token, so it must never
// be written to logs.
type InvitationEmail struct {
	To              string
	InviterName     string
	ClientName      string
	Role            string
	PersonalMessage string
	InvitationLink  string
}

// Mailer delivers invitation emails. Implementations must treat
// InvitationLink as a secret.
type Mailer interface {
	SendInvitation(ctx context.Context, msg InvitationEmail) error
}

// DisabledMailer logs a skip line instead of sending. Used when no
// sender address is configured, so local development works without
// AWS credentials.
type DisabledMailer struct{}

func (DisabledMailer) SendInvitation(ctx context.Context, msg InvitationEmail) error {
	slogx.FromContext(ctx).Info("email delivery disabled, skipping invitation",
		slog.String("to", msg.To),
	)
	return nil
}
