package usecases

// Mailer delivers a multipart email.
type Mailer interface {
	SendNotificationEmail(to, subject, plainBody, htmlBody string) error
}

// HTMLRenderer turns a markdown body into sanitized HTML.
type HTMLRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}
