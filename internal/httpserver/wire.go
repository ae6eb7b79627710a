package httpserver

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"web-larek/internal/domain"
)

// orderRequest is the POST /order body.
type orderRequest struct {
	Payment string   `json:"payment" binding:"required,oneof=card cash"`
	Email   string   `json:"email" binding:"required,larekemail"`
	Phone   string   `json:"phone" binding:"required,larekphone"`
	Address string   `json:"address" binding:"required"`
	Total   int64    `json:"total" binding:"gte=0"`
	Items   []string `json:"items" binding:"required,min=1,dive,required"`
}

func (r orderRequest) toDomain() domain.Order {
	return domain.Order{
		Payment: domain.Payment(r.Payment),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Address: strings.TrimSpace(r.Address),
		Total:   r.Total,
		Items:   r.Items,
	}
}

// orderResponse is the POST /order success body. The id is always a list.
type orderResponse struct {
	ID    []string `json:"id"`
	Total int64    `json:"total"`
}

func toOrderResponse(res domain.OrderResult) orderResponse {
	ids := []string(res.ID)
	if ids == nil {
		ids = []string{}
	}
	return orderResponse{ID: ids, Total: res.Total}
}

type errorResponse struct {
	Error string `json:"error"`
}

// fieldMessages maps a rejected request field to the message clients show.
var fieldMessages = map[string]string{
	"Payment": "Invalid payment method",
	"Email":   "Invalid email",
	"Phone":   "Invalid phone",
	"Address": "Address required",
	"Total":   "Incorrect order total",
	"Items":   "No items in order",
}

// bindingMessage turns a binding failure into a client message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if msg, ok := fieldMessages[field]; ok {
			return msg
		}
		return "Invalid " + strings.ToLower(field)
	}
	return "Invalid request body"
}
