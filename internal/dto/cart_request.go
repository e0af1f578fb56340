package dto

import "encoding/json"

// Quantities and ids arrive as raw JSON numbers so the controller can
// reject fractional values instead of letting the decoder truncate them.
type AddItemRequest struct {
	ProductID json.Number `json:"productId"`
	Quantity  json.Number `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity json.Number `json:"quantity"`
}
