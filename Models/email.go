package Models

// EmailConfig holds the SMTP settings used for drive reminders.
type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// Enabled reports whether enough settings are present to send mail.
func (c EmailConfig) Enabled() bool {
	return c.SMTPServer != "" && c.FromEmail != ""
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	CC      []string
	Subject string
	Body    string
	IsHTML  bool
}
