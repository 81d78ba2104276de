package request

import (
	"warehouse-booking/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	Amount        string  `json:"amount" binding:"required,decimal2"`
	Method        string  `json:"method" binding:"required,payment_method"`
	TransactionID *string `json:"transaction_id,omitempty" binding:"omitempty,max=100"`
	Note          *string `json:"note,omitempty" binding:"omitempty,max=500"`
}

func (r RecordPaymentRequest) ToCommand() (commands.RecordPaymentRequest, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return commands.RecordPaymentRequest{}, err
	}
	return commands.RecordPaymentRequest{
		Amount:        amount,
		Method:        r.Method,
		TransactionID: r.TransactionID,
		Note:          r.Note,
	}, nil
}
