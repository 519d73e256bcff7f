package storage

import (
	"context"
	"encoding/json"
	"time"

	"resort-concierge/guest-svc/internal/cart"
	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultCheckoutLockTTL = 30 * time.Second
	maxCartUpdateAttempts  = 10
)

// releaseLock deletes the lock only while it still holds our token, so an
// expired lock taken over by another checkout is left alone.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCartStore keeps one JSON document per cart owner. Every save and load
// pushes the expiry forward.
type RedisCartStore struct {
	Client  *redis.Client
	TTL     time.Duration
	LockTTL time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl, LockTTL: DefaultCheckoutLockTTL}
}

func (s *RedisCartStore) CartKey(ownerID string) string {
	return "cart:" + ownerID
}

func (s *RedisCartStore) CheckoutLockKey(ownerID string) string {
	return "cart:checkout:" + ownerID
}

func (s *RedisCartStore) Load(ctx context.Context, ownerID string) (*cart.Cart, error) {
	key := s.CartKey(ownerID)
	c, err := decodeCart(s.Client.Get(ctx, key))
	if err != nil {
		return nil, err
	}
	if len(c.Items) > 0 {
		_ = s.Client.Expire(ctx, key, s.TTL).Err()
	}
	return c, nil
}

func (s *RedisCartStore) Save(ctx context.Context, ownerID string, c *cart.Cart) error {
	key := s.CartKey(ownerID)
	if c == nil || len(c.Items) == 0 {
		return errors.Wrap(s.Client.Del(ctx, key).Err(), "delete cart")
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	return errors.Wrap(s.Client.Set(ctx, key, payload, s.TTL).Err(), "save cart")
}

// Update runs fn inside WATCH/MULTI and retries when another writer touched
// the cart first.
func (s *RedisCartStore) Update(ctx context.Context, ownerID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	key := s.CartKey(ownerID)
	var updated *cart.Cart
	var fnErr error

	txf := func(tx *redis.Tx) error {
		c, err := decodeCart(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		if fnErr = fn(c); fnErr != nil {
			return fnErr
		}

		var payload []byte
		if len(c.Items) > 0 {
			if payload, err = json.Marshal(c); err != nil {
				return errors.Wrap(err, "encode cart")
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if payload == nil {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, payload, s.TTL)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = c
		return nil
	}

	for attempt := 0; attempt < maxCartUpdateAttempts; attempt++ {
		err := s.Client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return updated, nil
		case fnErr != nil:
			return nil, fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return nil, errors.Wrap(err, "update cart")
		}
	}
	return nil, errors.New("update cart: too many concurrent writers")
}

func (s *RedisCartStore) LockCheckout(ctx context.Context, ownerID string) (func(), error) {
	key := s.CheckoutLockKey(ownerID)
	token := uuid.NewString()

	ok, err := s.Client.SetNX(ctx, key, token, s.LockTTL).Result()
	if err != nil {
		return nil, errors.Wrap(err, "lock cart checkout")
	}
	if !ok {
		return nil, domain.ErrCheckoutInProgress
	}
	return func() {
		_ = releaseLock.Run(context.WithoutCancel(ctx), s.Client, []string{key}, token).Err()
	}, nil
}

func decodeCart(cmd *redis.StringCmd) (*cart.Cart, error) {
	raw, err := cmd.Bytes()
	if err == redis.Nil {
		return cart.New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return c, nil
}

var _ cart.Store = (*RedisCartStore)(nil)
