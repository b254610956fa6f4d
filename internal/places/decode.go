package places

import (
	"encoding/json"
	"fmt"
)

// Decode builds a Place from a backend hit's _type tag and raw JSON body.
// The tag selects the variant constructor; an unrecognised tag or a
// deserialisation failure is reported as an error so the caller can log
// and drop the hit without failing the whole request (spec §4.4
// Decoding, §8 invariant 8).
func Decode(docType string, body []byte) (Place, error) {
	switch DocType(docType) {
	case DocTypeAdmin:
		var a Admin
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, fmt.Errorf("decode admin: %w", err)
		}
		return &a, nil
	case DocTypeAddr:
		var a Addr
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, fmt.Errorf("decode addr: %w", err)
		}
		return &a, nil
	case DocTypeStreet:
		var s Street
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("decode street: %w", err)
		}
		return &s, nil
	case DocTypePoi:
		var p Poi
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode poi: %w", err)
		}
		return &p, nil
	case DocTypeStop:
		var s Stop
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("decode stop: %w", err)
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unknown doc type %q", docType)
	}
}
