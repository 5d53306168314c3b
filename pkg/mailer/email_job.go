package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the plain-text welcome email sent after registration.
func WelcomeJob(to, username string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Receipegram",
		Text: "Hi " + username + ",\n\n" +
			"Your Receipegram account is ready. Share your first recipe and start following other cooks.\n\n" +
			"Happy cooking!",
	}
}
