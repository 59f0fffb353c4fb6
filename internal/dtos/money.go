package dtos

import (
	"bytes"
	"encoding/json"

	"github.com/stevedao0/contract-service/internal/utils"
)

// Money is an amount in VND. It decodes from a JSON number or from text as
// typed on a form, e.g. "15.000.000 VNĐ".
type Money int64

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := utils.ParseMoney(s)
		if err != nil {
			return err
		}
		*m = Money(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = Money(n)
	return nil
}
