package order

import (
	"bytes"
	"encoding/json"
	"errors"

	"fooddispatch/internal/pkg/errs"
)

var emptyItems = json.RawMessage("[]")

// Items is the basket of an order: a JSON array whose element shape belongs
// to the client. The dispatcher never looks inside it.
type Items struct {
	raw json.RawMessage
}

// NewItems validates raw as a JSON array. Empty input and JSON null become
// an empty array.
func NewItems(raw []byte) (Items, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Items{raw: emptyItems}, nil
	}
	if !json.Valid(trimmed) || trimmed[0] != '[' {
		return Items{}, errs.NewValueIsInvalidErrorWithCause("items", errors.New("items must be a JSON array"))
	}
	return Items{raw: append(json.RawMessage(nil), trimmed...)}, nil
}

// JSON returns the array as stored; never nil.
func (i Items) JSON() json.RawMessage {
	if len(i.raw) == 0 {
		return emptyItems
	}
	return i.raw
}

func (i Items) String() string {
	return string(i.JSON())
}
