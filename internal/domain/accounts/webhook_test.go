package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"petcontrol/internal/errs"
)

func TestParsePurchase(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		source  string
		product string
		status  Status
	}{
		{"kiwify paid", `{"Product":{"id":"prod_1"},"Customer":{"email":" Ana@Example.com "},"order_status":"paid"}`, "kiwify", "prod_1", StatusActive},
		{"kiwify waiting", `{"Product":{"id":"prod_1"},"Customer":{"email":"a@b.c"},"order_status":"waiting_payment"}`, "kiwify", "prod_1", StatusInactive},
		{"kiwify refunded", `{"Product":{"id":"prod_1"},"Customer":{"email":"a@b.c"},"order_status":"refunded"}`, "kiwify", "prod_1", StatusCanceled},
		{"hotmart approved", `{"event":"PURCHASE_APPROVED","data":{"product":{"id":12345},"buyer":{"email":"a@b.c"}}}`, "hotmart", "12345", StatusActive},
		{"hotmart canceled", `{"event":"PURCHASE_CANCELED","data":{"product":{"id":"PROD_Y"},"buyer":{"email":"a@b.c"}}}`, "hotmart", "PROD_Y", StatusCanceled},
		{"hotmart refunded", `{"event":"PURCHASE_REFUNDED","data":{"product":{"id":"PROD_Y"},"buyer":{"email":"a@b.c"}}}`, "hotmart", "PROD_Y", StatusCanceled},
		{"hotmart delayed", `{"event":"PURCHASE_DELAYED","data":{"product":{"id":"PROD_Y"},"buyer":{"email":"a@b.c"}}}`, "hotmart", "PROD_Y", StatusInactive},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev, err := ParsePurchase([]byte(c.body))
			require.NoError(t, err)
			require.Equal(t, c.source, ev.Source)
			require.Equal(t, c.product, ev.ProductID)
			require.Equal(t, c.status, ev.Status)
		})
	}

	ev, _ := ParsePurchase([]byte(cases[0].body))
	require.Equal(t, "ana@example.com", ev.Email)
}

func TestParsePurchase_Rejects(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"foo":"bar"}`,
		`{"Product":{"id":"p"},"Customer":{},"order_status":"paid"}`,
		`{"event":"PURCHASE_APPROVED","data":{}}`,
	} {
		_, err := ParsePurchase([]byte(body))
		var ve *errs.ValidationError
		require.True(t, errors.As(err, &ve), body)
	}
}
