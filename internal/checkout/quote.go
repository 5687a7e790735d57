package checkout

import (
	"fmt"

	"github.com/angelmondragon/warungsunda-backend/internal/cart"
	"github.com/angelmondragon/warungsunda-backend/pkg/money"
)

// Quote is the priced summary of a cart shown before payment.
type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	Tax            int64 `json:"tax"`
	GrandTotal     int64 `json:"grandTotal"`
	ItemCount      int   `json:"itemCount"`
	TaxBasisPoints int   `json:"taxBasisPoints"`
}

// BuildQuote prices lines with tax charged at taxBPS basis points.
func BuildQuote(lines []cart.Line, taxBPS int) Quote {
	subtotal := cart.Subtotal(lines)
	tax := money.Percentage(subtotal, taxBPS)
	return Quote{
		Subtotal:       subtotal,
		Tax:            tax,
		GrandTotal:     subtotal + tax,
		ItemCount:      cart.Count(lines),
		TaxBasisPoints: taxBPS,
	}
}

// QRISPayload is the copyable text and rendered QR code of a mock QRIS charge.
type QRISPayload struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Text   string `json:"text"`
	PNG    []byte `json:"-"`
}

// QRISText formats the scanned text, e.g. "Warung Sunda\nJumlah: Rp 25.000\nQRIS ID: QR171...".
func QRISText(merchant string, amount int64, id string) string {
	return fmt.Sprintf("%s\nJumlah: %s\nQRIS ID: QR%s", merchant, money.FormatRupiah(amount), id)
}
