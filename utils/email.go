package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendPackageChangeEmail notifies the user that their benefit package
// switch was accepted and when it takes effect. Best-effort: callers log
// the error and move on.
func SendPackageChangeEmail(to, packageName, effectiveDate string) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your card benefit package has been changed")

	body := fmt.Sprintf(`
		<h2>Benefit package change accepted</h2>
		<p>Your card benefit package has been changed to <strong>%s</strong>.</p>
		<p>The new package takes effect on <strong>%s</strong>.</p>
		<p>Until then your current benefits remain in place.</p>
	`, packageName, effectiveDate)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
