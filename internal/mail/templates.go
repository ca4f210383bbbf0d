package mail

import (
	"fmt"
	"html"
)

// Substituted values are HTML-escaped so candidate-supplied text cannot
// inject markup into the message.

func ApplicationReceived(name, jobTitle string) string {
	name = html.EscapeString(name)
	jobTitle = html.EscapeString(jobTitle)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif; background-color: #f8fafc; color: #111827;">
  <div style="max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 8px; padding: 30px;">
    <div style="font-size: 1.3rem; font-weight: 600; color: #2563eb;">Application Received &ndash; %s</div>
    <p>Hi %s,</p>
    <p>Thank you for applying for the <strong>%s</strong> position at XYZ Corporation.
    We have received your application and our hiring team will review it shortly.</p>
    <p>If your qualifications match our requirements, we will be in touch to schedule the next steps.</p>
    <div style="margin-top: 30px; font-size: 0.9rem; color: #6b7280; border-top: 1px solid #e5e7eb; padding-top: 10px;">
      &mdash; The XYZ HR Team<br/>XYZ Corporation
    </div>
  </div>
</body>
</html>`, jobTitle, name, jobTitle)
}

func StatusChanged(name, jobTitle, status string) string {
	name = html.EscapeString(name)
	jobTitle = html.EscapeString(jobTitle)
	status = html.EscapeString(status)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif; background-color: #f8fafc; color: #111827;">
  <div style="max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 8px; padding: 30px;">
    <h2 style="color:#2563eb; margin-bottom:10px;">Application Update</h2>
    <p>Hi %s,</p>
    <p>Your application for <strong>%s</strong> has been updated. The new status is:</p>
    <div style="background: #e0f2fe; color: #0369a1; padding: 10px 14px; border-radius: 6px; display: inline-block; font-weight: 600;">%s</div>
    <p>If you have any questions or would like to follow up, feel free to reply to this email.</p>
    <div style="margin-top: 30px; font-size: 0.9rem; color: #6b7280; border-top: 1px solid #e5e7eb; padding-top: 10px;">
      &mdash; The XYZ HR Team<br/>XYZ Corporation
    </div>
  </div>
</body>
</html>`, name, jobTitle, status)
}
