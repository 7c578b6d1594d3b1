package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// PaymentResult adalah hasil satu percobaan charge
type PaymentResult struct {
	Ref    string `json:"ref"`
	Status string `json:"status"` // completed | failed
}

// PaymentService membungkus langkah pembayaran eksternal (Midtrans).
// Engine tidak menghitung harga; amount datang dari layer booking-UI.
// Tanpa MIDTRANS_SERVER_KEY service jalan dalam mode offline: semua
// charge langsung dianggap lunas (untuk development dan test).
type PaymentService struct {
	client  coreapi.Client
	enabled bool
}

func NewPaymentService() *PaymentService {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		log.Println("MIDTRANS_SERVER_KEY not set, payment service running in offline mode")
		return &PaymentService{enabled: false}
	}

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &PaymentService{client: client, enabled: true}
}

// Charge menjalankan satu percobaan pembayaran. Gagal dengan
// ErrPaymentDeclined jika gateway menolak; caller yang memutuskan retry
// dengan request baru, engine tidak mengulang sendiri.
func (ps *PaymentService) Charge(amount float64, method string) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, ErrPaymentDeclined
	}

	// Cash dicatat langsung tanpa gateway
	if method == "cash" || !ps.enabled {
		return &PaymentResult{
			Ref:    fmt.Sprintf("PAY-%s", uuid.New().String()),
			Status: "completed",
		}, nil
	}

	orderID := fmt.Sprintf("RSV-%s", uuid.New().String())
	req := &coreapi.ChargeReq{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
	}

	switch strings.ToLower(method) {
	case "qris":
		req.PaymentType = coreapi.PaymentTypeQris
	case "bank_transfer":
		req.PaymentType = coreapi.PaymentTypeBankTransfer
		req.BankTransfer = &coreapi.BankTransferDetails{Bank: midtrans.BankBca}
	case "gopay":
		req.PaymentType = coreapi.PaymentTypeGopay
	default:
		return nil, ErrPaymentDeclined
	}

	resp, chargeErr := ps.client.ChargeTransaction(req)
	if chargeErr != nil {
		log.Printf("Midtrans charge failed: %s", chargeErr.Message)
		return nil, ErrPaymentDeclined
	}

	switch resp.TransactionStatus {
	case "capture", "settlement", "pending":
		return &PaymentResult{Ref: resp.TransactionID, Status: "completed"}, nil
	default:
		log.Printf("Midtrans transaction %s rejected: %s", orderID, resp.TransactionStatus)
		return nil, ErrPaymentDeclined
	}
}
