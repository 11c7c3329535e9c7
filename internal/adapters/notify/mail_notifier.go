// Package notify sends partner notifications by e-mail.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"gopkg.in/gomail.v2"
)

// MessageSender is satisfied by *gomail.Dialer.
type MessageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier delivers withdrawal decisions through an SMTP relay.
type MailNotifier struct {
	sender MessageSender
	from   string
}

// NewMailNotifier returns a notifier that logs instead of sending when no SMTP credentials are set.
func NewMailNotifier(host string, port int, user, pass, from string) portssvc.Notifier {
	if user == "" || pass == "" {
		return LogNotifier{}
	}
	if from == "" {
		from = user
	}
	return &MailNotifier{sender: gomail.NewDialer(host, port, user, pass), from: from}
}

func NewMailNotifierWithSender(sender MessageSender, from string) *MailNotifier {
	return &MailNotifier{sender: sender, from: from}
}

var _ portssvc.Notifier = (*MailNotifier)(nil)

func (n *MailNotifier) NotifyWithdrawalDecision(ctx context.Context, w domain.WithdrawalRequest) error {
	if w.PartnerEmail == "" {
		return fmt.Errorf("partner %s has no e-mail address", w.PartnerID)
	}
	subject, body := withdrawalMessage(w)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", w.PartnerEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send withdrawal e-mail to %s: %w", w.PartnerEmail, err)
	}
	return nil
}

func withdrawalMessage(w domain.WithdrawalRequest) (string, string) {
	amount := utils.FormatMoney(w.Amount)
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", w.PartnerName)

	var subject string
	switch w.Status {
	case domain.WithdrawalApproved:
		subject = "Withdrawal Approved"
		fmt.Fprintf(&b, "Your withdrawal request of %s has been approved and paid from your wallet.\n", amount)
	default:
		subject = "Withdrawal Rejected"
		fmt.Fprintf(&b, "Your withdrawal request of %s has been rejected.\n", amount)
		if w.RejectionReason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", w.RejectionReason)
		}
	}
	if w.AdminNote != "" {
		fmt.Fprintf(&b, "Note: %s\n", w.AdminNote)
	}
	b.WriteString("\nBest regards,\nAnimal Wellness")
	return subject, b.String()
}

// LogNotifier only logs; it stands in when mail is not configured.
type LogNotifier struct{}

func (LogNotifier) NotifyWithdrawalDecision(ctx context.Context, w domain.WithdrawalRequest) error {
	slog.InfoContext(ctx, "Mail disabled, skipping withdrawal notification",
		slog.String("withdrawal_id", w.WithdrawalID),
		slog.String("status", string(w.Status)))
	return nil
}
