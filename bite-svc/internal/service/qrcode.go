package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

const pickupCodeSize = 256

// QRGenerator renders the code a buyer shows when collecting a purchase.
type QRGenerator interface {
	Generate(purchaseID int64) ([]byte, error)
}

// PickupQR encodes a link to the pickup page of a purchase as a PNG.
type PickupQR struct {
	BaseURL string
}

// PickupURL is the link scanned at the counter.
func (p PickupQR) PickupURL(purchaseID int64) string {
	query := url.Values{"purchase_id": {strconv.FormatInt(purchaseID, 10)}}
	return strings.TrimRight(p.BaseURL, "/") + "/pickup?" + query.Encode()
}

func (p PickupQR) Generate(purchaseID int64) ([]byte, error) {
	png, err := qrcode.Encode(p.PickupURL(purchaseID), qrcode.Medium, pickupCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pickup code for purchase %d: %w", purchaseID, err)
	}
	return png, nil
}
