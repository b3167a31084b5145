// Package email sends the portal's transactional messages.
//
// EmailSender is implemented by BrevoClient, ResendClient, PostmarkClient and
// DevSender. NewSender picks one from Config: EMAIL_PROVIDER when set,
// otherwise the first provider that has credentials, otherwise DevSender,
// which writes messages to disk instead of sending them.
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "member@example.com",
//		Subject:  subject,
//		BodyHTML: html,
//		BodyText: text,
//		Tag:      "magic-link",
//	})
//
// Message bodies are produced by the templates subpackage.
package email
