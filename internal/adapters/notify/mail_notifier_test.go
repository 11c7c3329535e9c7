package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func approved() domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		WithdrawalID: "wd-1",
		PartnerID:    "p-1",
		PartnerName:  "Dr. Rivera",
		PartnerEmail: "rivera@example.com",
		Amount:       decimal.NewFromInt(2500),
		Status:       domain.WithdrawalApproved,
	}
}

func TestNotifyWithdrawalDecisionSendsMail(t *testing.T) {
	sender := new(mockSender)
	sender.On("DialAndSend", mock.MatchedBy(func(msgs []*gomail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("To")[0] == "rivera@example.com" &&
			msgs[0].GetHeader("Subject")[0] == "Withdrawal Approved" &&
			msgs[0].GetHeader("From")[0] == "noreply@example.com"
	})).Return(nil).Once()

	n := NewMailNotifierWithSender(sender, "noreply@example.com")
	require.NoError(t, n.NotifyWithdrawalDecision(context.Background(), approved()))
	sender.AssertExpectations(t)
}

func TestNotifyWithdrawalDecisionWrapsSendError(t *testing.T) {
	sender := new(mockSender)
	sendErr := errors.New("connection refused")
	sender.On("DialAndSend", mock.Anything).Return(sendErr)

	n := NewMailNotifierWithSender(sender, "noreply@example.com")
	err := n.NotifyWithdrawalDecision(context.Background(), approved())
	assert.ErrorIs(t, err, sendErr)
}

func TestNotifyWithdrawalDecisionRequiresEmail(t *testing.T) {
	sender := new(mockSender)
	w := approved()
	w.PartnerEmail = ""

	n := NewMailNotifierWithSender(sender, "noreply@example.com")
	assert.Error(t, n.NotifyWithdrawalDecision(context.Background(), w))
	sender.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestWithdrawalMessage(t *testing.T) {
	w := approved()
	w.Status = domain.WithdrawalRejected
	w.RejectionReason = "bank details missing"

	subject, body := withdrawalMessage(w)
	assert.Equal(t, "Withdrawal Rejected", subject)
	assert.Contains(t, body, "2,500.00")
	assert.Contains(t, body, "Reason: bank details missing")
}

func TestNewMailNotifierWithoutCredentials(t *testing.T) {
	n := NewMailNotifier("smtp.example.com", 2525, "", "", "")
	_, ok := n.(LogNotifier)
	assert.True(t, ok)
	assert.NoError(t, n.NotifyWithdrawalDecision(context.Background(), approved()))
}
