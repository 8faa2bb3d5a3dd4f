package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// BarcodePrefix starts every generated inventory barcode.
const BarcodePrefix = "CAM"

// GenerateBarcode returns an internal tracking barcode of the form
// CAM-YYYYMMDD-HHMMSS-NNN.
func GenerateBarcode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("generating barcode suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%03d", BarcodePrefix, now.Format("20060102-150405"), n.Int64()), nil
}
