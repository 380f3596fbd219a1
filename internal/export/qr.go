package export

import (
	"encoding/json"
	"fmt"

	"github.com/piwi3910/HelixPack/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// ArrangementInfo holds the data encoded into each arrangement page's QR code.
type ArrangementInfo struct {
	RunID     string          `json:"run"`
	Component int             `json:"component"`
	Rank      int             `json:"rank"`
	Helices   []int           `json:"helices"`
	Positions []model.Point2D `json:"positions"`
	Rotations []int           `json:"rotations"`
	Score     float64         `json:"score"`
}

// NewArrangementInfo collects the QR payload for one ranked arrangement.
func NewArrangementInfo(report model.Report, component int, a model.ArrangementResult) ArrangementInfo {
	return ArrangementInfo{
		RunID:     report.RunID,
		Component: component + 1,
		Rank:      a.Rank,
		Helices:   a.HelixNumber,
		Positions: a.Positions,
		Rotations: a.Rotations,
		Score:     a.Score,
	}
}

// EncodeQR renders the payload as a PNG QR code.
func EncodeQR(info ArrangementInfo, size int) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal arrangement info: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
