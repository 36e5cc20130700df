package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// DecodeError reports a stored value that could not be decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding stored %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeJSON reads key and unmarshals it into v.
// ok is false when the key is absent; a malformed value yields a *DecodeError.
func decodeJSON(ctx context.Context, store Store, key string, v any) (ok bool, err error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &DecodeError{Key: key, Err: err}
	}
	return true, nil
}

// loadJSON is decodeJSON with corrupt values treated as absent.
func loadJSON(ctx context.Context, store Store, key string, v any) (bool, error) {
	ok, err := decodeJSON(ctx, store, key, v)
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		slog.Warn("discarding corrupt stored value", "key", key, "error", decodeErr.Err)
		return false, nil
	}
	return ok, err
}

func saveJSON(ctx context.Context, store Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}
