package memberkit

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Direction marks which side of the cursor position a page request wants.
type Direction string

const (
	// DirectionAfter selects rows strictly greater than the cursor position.
	DirectionAfter Direction = "after"

	// DirectionBefore selects rows strictly less than the cursor position.
	DirectionBefore Direction = "before"
)

// Cursor is an opaque position in an ordered collection. It encodes the
// ordering key's value, the entity id that breaks ties, and the paging
// direction. A cursor is only meaningful against the same ordering and
// filter that produced it; it is a value, never a live database handle.
//
// The order key travels as Unix milliseconds so the token is stable across
// drivers and timezones.
type Cursor struct {
	Key       int64     `json:"k"`
	ID        string    `json:"id"`
	Direction Direction `json:"d"`
}

// KeyTime returns the order key as a UTC timestamp.
func (c Cursor) KeyTime() time.Time {
	return time.UnixMilli(c.Key).UTC()
}

// Encode serializes the cursor to a URL-safe opaque token.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses an opaque token back into a Cursor.
// An empty token means "no cursor" and decodes to nil without error.
// Anything that is not a token previously produced by Encode fails with
// ErrInvalidCursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, NewError(ErrInvalidCursor, "token is not valid base64url")
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, NewError(ErrInvalidCursor, "token payload is not valid")
	}

	if c.Direction != DirectionAfter && c.Direction != DirectionBefore {
		return nil, NewError(ErrInvalidCursor, "token has no paging direction")
	}
	if c.ID == "" {
		return nil, NewError(ErrInvalidCursor, "token has no entity id")
	}

	return &c, nil
}

// cursorFor mints a cursor anchored at an item's pagination key.
func cursorFor[T Keyed](item T, d Direction) string {
	key, id := item.PaginationKey()
	return Cursor{Key: key.UnixMilli(), ID: id, Direction: d}.Encode()
}
