package mail

import (
	"fmt"
	"html/template"
	"strings"
)

type otpEmail struct {
	AppName       string
	Name          string
	Code          string
	ExpiryMinutes int
	Year          int
}

type welcomeEmail struct {
	AppName  string
	Name     string
	Role     string
	Email    string
	Password string
	Year     int
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>{{.AppName}}</h1>
    <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
    <p>You've requested to sign in to your {{.AppName}} account. Please use the verification code below:</p>
    <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center; padding: 20px;">{{.Code}}</div>
    <ul>
      <li>This code will expire in {{.ExpiryMinutes}} minutes</li>
      <li>Do not share this code with anyone</li>
      <li>If you didn't request this code, please ignore this email</li>
    </ul>
    <p style="color: #6b7280; font-size: 14px;">&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
  </div>
</body>
</html>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Welcome to {{.AppName}}!</h1>
    <p>Hello {{.Name}},</p>
    <p>Your account has been created with the role <strong>{{.Role}}</strong>.</p>
    <h3>Your Login Credentials</h3>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Password:</strong> <code>{{.Password}}</code></p>
    <ul>
      <li>Please change your password after your first login</li>
      <li>Do not share your credentials with anyone</li>
    </ul>
    <p>You can now sign in with your email address and password. A verification code is emailed to you on every login.</p>
    <p style="color: #6b7280; font-size: 14px;">&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
  </div>
</body>
</html>
`))

func renderOTP(data otpEmail) (string, error) {
	var sb strings.Builder
	if err := otpTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering verification email: %w", err)
	}
	return sb.String(), nil
}

func renderWelcome(data welcomeEmail) (string, error) {
	var sb strings.Builder
	if err := welcomeTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering welcome email: %w", err)
	}
	return sb.String(), nil
}
