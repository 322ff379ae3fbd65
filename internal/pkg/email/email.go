package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/qs3c/kino_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendPurchaseReceipt 发送购买回执邮件
func (s *Service) SendPurchaseReceipt(to, planName, amount, transactionID, purchasedAt string) error {
	subject := "购买回执 - Kino 影视平台"

	txnRow := ""
	if transactionID != "" {
		txnRow = fmt.Sprintf(`<tr><td style="padding: 8px; color: #6b7280;">交易号</td><td style="padding: 8px;">%s</td></tr>`, transactionID)
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">购买成功</h2>
        <p>您好，</p>
        <p>感谢您订阅 Kino 影视平台，以下是本次购买的回执信息：</p>
        <table style="width: 100%%; border-collapse: collapse; background-color: #f3f4f6; margin: 20px 0;">
            <tr><td style="padding: 8px; color: #6b7280;">套餐</td><td style="padding: 8px;">%s</td></tr>
            <tr><td style="padding: 8px; color: #6b7280;">金额</td><td style="padding: 8px;">%s</td></tr>
            %s
            <tr><td style="padding: 8px; color: #6b7280;">购买时间</td><td style="padding: 8px;">%s</td></tr>
        </table>
        <p>您现在可以观看套餐内的全部影片了。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, planName, amount, txnRow, purchasedAt)

	return s.sendHTML(to, subject, body)
}

// SendWelcome 发送欢迎邮件
func (s *Service) SendWelcome(to, username string) error {
	subject := "欢迎加入 - Kino 影视平台"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">欢迎加入！</h2>
        <p>您好，%s！</p>
        <p>感谢您注册 Kino 影视平台。</p>
        <p>现在您可以：</p>
        <ul>
            <li>浏览并搜索影片目录</li>
            <li>收藏喜欢的影片</li>
            <li>订阅套餐解锁高清内容</li>
        </ul>
        <p>开始探索吧！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, username)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
