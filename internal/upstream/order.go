package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrMissingOrderID возвращается, если сервис заказов не вернул идентификатор заказа.
var ErrMissingOrderID = errors.New("order id missing in response")

// OrderID содержит непрозрачный идентификатор заказа. В JSON может быть числом или строкой
// и сериализуется обратно в той же форме.
type OrderID struct {
	value   string
	numeric bool
}

// NewOrderID создаёт строковый идентификатор заказа.
func NewOrderID(value string) OrderID {
	return OrderID{value: value}
}

// NumericOrderID создаёт числовой идентификатор заказа.
func NumericOrderID(value int64) OrderID {
	return OrderID{value: strconv.FormatInt(value, 10), numeric: true}
}

// IsZero сообщает, что идентификатор пуст.
func (id OrderID) IsZero() bool {
	return id.value == ""
}

// UnmarshalJSON принимает идентификатор в виде числа или строки и запоминает форму.
func (id *OrderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = OrderID{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrderID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	*id = OrderID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON сериализует идентификатор в той форме, в которой он был получен.
func (id OrderID) MarshalJSON() ([]byte, error) {
	if id.numeric && id.value != "" {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id OrderID) String() string {
	return id.value
}

// OrderRequest описывает тело запроса на создание заказа.
type OrderRequest struct {
	PlayerID string `json:"player_id"`
	UCAmount int    `json:"uc_amount"`
	BonusUC  int    `json:"bonus_uc"`
	Price    int    `json:"price"`
}

// OrderResult описывает ответ сервиса заказов.
type OrderResult struct {
	ID     OrderID `json:"id"`
	Status string  `json:"status,omitempty"`
}

// CreateOrder создаёт заказ во внешнем сервисе заказов.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	var res OrderResult
	if err := c.doJSON(ctx, http.MethodPost, c.endpoints.OrderURL, req, nil, &res); err != nil {
		return OrderResult{}, fmt.Errorf("create order: %w", err)
	}

	if res.ID.IsZero() {
		return OrderResult{}, ErrMissingOrderID
	}

	return res, nil
}
