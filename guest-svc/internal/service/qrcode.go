package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

// DefaultQRGenerator encodes the public order page so venue staff can scan it.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(orderNumber string) string {
	return strings.TrimRight(g.BaseURL, "/") + OrderLink(orderNumber)
}

func (g DefaultQRGenerator) Generate(orderNumber string) ([]byte, error) {
	return qrcode.Encode(g.Link(orderNumber), qrcode.Medium, 256)
}

func OrderLink(orderNumber string) string {
	return "/orders/" + orderNumber
}
