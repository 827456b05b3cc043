package commerce

import "encoding/json"

// normalizePayload reduces the upstream's inconsistent envelopes to one
// shape. The API wraps list and detail payloads unevenly: sometimes
// {"data": ...}, sometimes {"data": {"data": ...}}, orders come back as
// {"data": {"orders": [...]}}, and a few endpoints return the payload
// bare. Downstream code always receives the innermost payload.
func normalizePayload(raw []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// Not an object: bare array or scalar payload
		return raw, nil
	}

	data, ok := envelope["data"]
	if !ok {
		return raw, nil
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(data, &inner); err != nil {
		// data is an array or scalar
		return data, nil
	}
	if nested, ok := inner["data"]; ok {
		return nested, nil
	}
	if orders, ok := inner["orders"]; ok {
		return orders, nil
	}
	return data, nil
}
