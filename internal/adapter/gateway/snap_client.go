package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// SnapClient creates transactions on the external payment gateway and
// returns the token/redirect pair for the storefront to hand to the
// customer. The gateway authenticates the server key via basic auth.
type SnapClient struct {
	baseURL   string
	serverKey string
	hc        *http.Client
	timeout   time.Duration
}

func NewSnapClient(baseURL, serverKey string, timeout time.Duration) *SnapClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SnapClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		serverKey: serverKey,
		hc:        &http.Client{Timeout: timeout},
		timeout:   timeout,
	}
}

type snapItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type snapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		FirstName string `json:"first_name"`
		Phone     string `json:"phone"`
	} `json:"customer_details"`
	ItemDetails []snapItem `json:"item_details"`
}

func (c *SnapClient) CreateTransaction(ctx context.Context, req usecase.GatewayTransactionRequest) (usecase.GatewayTransactionResponse, error) {
	// ensure per-call timeout if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body snapRequest
	body.TransactionDetails.OrderID = req.OrderID
	body.TransactionDetails.GrossAmount = req.GrossAmount
	body.CustomerDetails.FirstName = req.Customer.Name
	body.CustomerDetails.Phone = req.Customer.Phone
	for _, li := range req.Items {
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		name := li.Name
		if li.Color != "" {
			name = fmt.Sprintf("%s (%s)", li.Name, li.Color)
		}
		body.ItemDetails = append(body.ItemDetails, snapItem{
			ID:       li.ProductID,
			Name:     name,
			Price:    li.UnitPrice,
			Quantity: qty,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return usecase.GatewayTransactionResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/snap/v1/transactions", bytes.NewReader(payload))
	if err != nil {
		return usecase.GatewayTransactionResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.serverKey, "")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return usecase.GatewayTransactionResponse{}, &usecase.GatewayError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return usecase.GatewayTransactionResponse{}, &usecase.GatewayError{Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return usecase.GatewayTransactionResponse{}, &usecase.GatewayError{
			Message: gatewayErrorMessage(resp.StatusCode, raw),
		}
	}

	var out usecase.GatewayTransactionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return usecase.GatewayTransactionResponse{}, &usecase.GatewayError{Message: "malformed response", Err: err}
	}
	return out, nil
}

// gatewayErrorMessage keeps whatever diagnostics the gateway sent.
func gatewayErrorMessage(status int, raw []byte) string {
	var parsed struct {
		ErrorMessages []string `json:"error_messages"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.ErrorMessages) > 0 {
		return fmt.Sprintf("status %d: %s", status, strings.Join(parsed.ErrorMessages, "; "))
	}
	return fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(raw)))
}

var _ usecase.PaymentGateway = (*SnapClient)(nil)
