package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const DefaultBadgeSize = 256

// BadgePNG สร้าง QR badge (PNG) ที่เก็บ payload สำหรับสแกนเช็คชื่อ
func BadgePNG(payload string, size int) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("empty QR payload")
	}
	if size <= 0 {
		size = DefaultBadgeSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
