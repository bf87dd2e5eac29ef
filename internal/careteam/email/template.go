package email

import (
	"fmt"
	"html"
	"strings"
)

func renderInvitationHTML(msg InvitationEmail) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d5b; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #2e7d5b; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.note { background-color: #fff; border-left: 4px solid #2e7d5b; padding: 10px 15px; margin: 15px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>Care Team Invitation</h1></div>
		<div class="content">
`)
	fmt.Fprintf(&b, "\t\t\t<p>%s has invited you to join %s's care team as a %s caregiver.</p>\n",
		html.EscapeString(msg.InviterName), html.EscapeString(msg.ClientName), html.EscapeString(msg.Role))
	if msg.PersonalMessage != "" {
		fmt.Fprintf(&b, "\t\t\t<div class=\"note\"><p>%s</p></div>\n", html.EscapeString(msg.PersonalMessage))
	}
	fmt.Fprintf(&b, `			<p style="text-align: center;">
				<a href="%s" class="button">Accept Invitation</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p>If you weren't expecting this invitation, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, msg.InvitationLink, html.EscapeString(msg.InvitationLink))

	return b.String()
}

func renderInvitationText(msg InvitationEmail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s has invited you to join %s's care team as a %s caregiver.\n\n",
		msg.InviterName, msg.ClientName, msg.Role)
	if msg.PersonalMessage != "" {
		fmt.Fprintf(&b, "Message from %s:\n%s\n\n", msg.InviterName, msg.PersonalMessage)
	}
	fmt.Fprintf(&b, "Accept the invitation:\n%s\n\n", msg.InvitationLink)
	b.WriteString("If you weren't expecting this invitation, you can safely ignore this email.\n")

	return b.String()
}
