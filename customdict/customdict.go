// Package customdict provides an optional, Redis-backed live/session
// vocabulary overlay: a word an operator adds at runtime is treated as known
// by the correction engine when it is the token being checked, without
// retraining the language model. Candidate generation consults only the
// language model, so custom words are not proposed as corrections. Adapted
// from 0xEodum-Corrector's internal/customdict package for this engine's
// Engine.AddCustomWord/RemoveCustomWord surface.
package customdict

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SyntheticCount is the unigram frequency reported for every custom-dict
// word, high enough that the frequency pre-filter never drops it and the
// ranker treats it as solidly known.
const SyntheticCount uint64 = 1 << 20

// Dict wraps a Redis client to store words added at runtime. A nil *Dict
// is a valid, always-empty dictionary, so an Engine with no custom
// dictionary configured never touches Redis.
type Dict struct {
	client *redis.Client
	key    string
}

// New creates a Dict backed by client, storing members under key (typically
// one key per session/tenant).
func New(client *redis.Client, key string) *Dict {
	if key == "" {
		key = "custom_dict"
	}
	return &Dict{client: client, key: key}
}

// Add inserts word into the custom dictionary.
func (d *Dict) Add(ctx context.Context, word string) error {
	if d == nil {
		return nil
	}
	return d.client.SAdd(ctx, d.key, word).Err()
}

// Remove deletes word from the custom dictionary.
func (d *Dict) Remove(ctx context.Context, word string) error {
	if d == nil {
		return nil
	}
	return d.client.SRem(ctx, d.key, word).Err()
}

// Contains reports whether word was added to the custom dictionary.
func (d *Dict) Contains(ctx context.Context, word string) (bool, error) {
	if d == nil {
		return false, nil
	}
	return d.client.SIsMember(ctx, d.key, word).Result()
}

// All returns every word currently in the custom dictionary.
func (d *Dict) All(ctx context.Context) ([]string, error) {
	if d == nil {
		return nil, nil
	}
	return d.client.SMembers(ctx, d.key).Result()
}
