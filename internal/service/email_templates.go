package service

import "fmt"

func verificationEmailTemplate(verifyURL, appName string) (string, string) {
	subject := "Verify your email"
	body := fmt.Sprintf(`Hello from %s!

Click the link below to verify your account:
%s

The link can only be used once.

If you didn't create an account, you can safely ignore this email.

Best,
The %s Team`, appName, verifyURL, appName)

	return subject, body
}
