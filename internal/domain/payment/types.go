package payment

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidMethod = errors.New("invalid payment method")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// Counts reports whether the payment reserves part of the reservation total.
func (s Status) Counts() bool {
	return s == StatusPending || s == StatusProcessing || s == StatusCompleted
}

type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
	MethodOther        Method = "other"
)

var Methods = []Method{MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodCash, MethodOther}

func NewMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", ErrInvalidMethod
}

func (m Method) String() string { return string(m) }
