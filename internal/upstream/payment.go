package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

const idempotenceKeyHeader = "Idempotence-Key"

// PaymentRequest описывает тело запроса на создание платежа.
type PaymentRequest struct {
	OrderID     OrderID `json:"order_id"`
	Amount      int     `json:"amount"`
	Description string  `json:"description"`
}

// PaymentResult описывает ответ сервиса платежей. PaymentURL может отсутствовать.
type PaymentResult struct {
	PaymentID  string `json:"payment_id,omitempty"`
	PaymentURL string `json:"payment_url,omitempty"`
	Status     string `json:"status,omitempty"`
}

// CreatePayment создаёт платёж по ранее созданному заказу.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (PaymentResult, error) {
	header := http.Header{}
	header.Set(idempotenceKeyHeader, uuid.NewString())

	var res PaymentResult
	if err := c.doJSON(ctx, http.MethodPost, c.endpoints.PaymentURL, req, header, &res); err != nil {
		return PaymentResult{}, fmt.Errorf("create payment: %w", err)
	}

	return res, nil
}
