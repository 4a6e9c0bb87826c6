// Package email, uygulama genelinde email gönderimi için soyutlama katmanı.
//
// EmailSender interface'i gönderim detaylarını soyutlar; service katmanı
// concrete Resend implementasyonuna değil interface'e bağımlıdır.
// Farklı bir sağlayıcıya geçiş sadece yeni bir implementasyon + wire-up
// değişikliği gerektirir.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendPasswordReset, kullanıcıya şifre sıfırlama linki içeren email gönderir.
	// token: plaintext reset token (DB'de hash'i saklanır, link'e gömülür).
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// resendSender, Resend API ile gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@kalem.app)
	appURL    string // Uygulamanın public URL'i, reset link'lerde kullanılır
}

// NewResendSender, Resend client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend API key (re_xxxxxxxx formatında).
// fromEmail: Resend'de doğrulanmış domain altında bir gönderici adresi.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendPasswordReset, şifre sıfırlama email'i gönderir.
//
// Link formatı: {appURL}/reset-password?token={token}
// Kullanıcı linke tıkladığında frontend token'ı URL'den okuyup
// POST /api/auth/reset-password endpoint'ine iletir.
func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#faf7f2;font-family:Georgia,serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#faf7f2;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border:1px solid #e7e0d4;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#2b2b2b;font-size:24px;margin:0 0 8px 0;">kalem</h1>
              <h2 style="color:#2b2b2b;font-size:18px;margin:0 0 24px 0;">Password Reset Request</h2>
              <p style="color:#5c5c5c;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                We received a request to reset your password. Click the button below to choose a new one.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#1f6f54;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Reset Password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#8a8a8a;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link will expire in 1 hour. If you didn't request a password reset, you can safely ignore this email.
              </p>
              <p style="color:#8a8a8a;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#1f6f54;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, resetLink, resetLink, resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("kalem <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Reset your password - kalem",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}
