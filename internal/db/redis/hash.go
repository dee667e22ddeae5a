package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/sitesearch/internal/db"
)

// HSet writes the given fields into a hash, leaving other fields untouched.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	cmd := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// HGet reads one hash field. ok is false when the key or the field is absent.
func (s *Store) HGet(ctx context.Context, key, field string) (value string, ok bool, err error) {
	cmd := s.b().Hget().Key(key).Field(field).Build()
	value, err = s.do(ctx, cmd).ToString()
	if rueidis.IsRedisNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &db.Error{Op: db.OpHGet, Err: err}
	}
	return value, true, nil
}
