package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"staybook/internal/app/commands"
)

// IdempotentCommand is implemented by commands that may be retried by clients.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	// ResultPrototype returns a pointer to a zero value of the handler result type.
	ResultPrototype() any
}

type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONResultCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

var errMissingPrototype = errors.New("middleware: idempotent command requires a pointer result prototype")

// Idempotency replays the stored result of a successful command with the same key.
// Failed commands are not remembered, so a client may retry them.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := cmd.Key() + ":" + idCmd.IdempotencyKey()
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				return decodePrototype(codec, rec.Payload, idCmd.ResultPrototype())
			}
			result, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			payload, err := codec.Encode(result)
			if err != nil {
				return nil, err
			}
			if err := store.Save(ctx, IdempotencyRecord{Key: key, Payload: payload, OccurredAt: time.Now().UTC()}); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}

// decodePrototype fills proto and returns the value it points to, matching what the
// handler itself returns.
func decodePrototype(codec ResultCodec, payload []byte, proto any) (any, error) {
	rv := reflect.ValueOf(proto)
	if proto == nil || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, errMissingPrototype
	}
	if err := codec.Decode(payload, proto); err != nil {
		return nil, err
	}
	return rv.Elem().Interface(), nil
}
