package availability

import "errors"

var (
	ErrEncode = errors.New("availability.cache: failed to encode snapshot")
	ErrDecode = errors.New("availability.cache: failed to decode snapshot")
	ErrRedis  = errors.New("availability.cache: redis command failed")
)
