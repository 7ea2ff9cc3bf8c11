package myredis

import (
	"context"
	"fmt"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"github.com/go-redis/redis/v8"
)

const backendName = "redis"

// Store keeps every service type as a list "<namespace>service:<type>" in registration order, and the set of
// known types under "<namespace>services". Lists never expire.
type Store struct {
	client    redis.UniversalClient
	namespace string
}

// NewStore creates the redis store. namespace prefixes every key and may be empty.
func NewStore(client redis.UniversalClient, namespace string) *Store {
	return &Store{
		client:    service.NilPanic(client, "myredis.store.go: redis client is required"),
		namespace: namespace,
	}
}

func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.listKey(reg.ServiceType), reg.ServiceURL)
		pipe.SAdd(ctx, s.typesKey(), reg.ServiceType)
		return nil
	})
	if err != nil {
		return service.NewStoreError(backendName, "register", fmt.Errorf("rpush %s: %w", s.listKey(reg.ServiceType), err))
	}
	return nil
}

// Deregister removes every list element equal to the url (LREM count 0).
func (s *Store) Deregister(ctx context.Context, reg domain.Registration) (bool, error) {
	known, err := s.client.SIsMember(ctx, s.typesKey(), reg.ServiceType).Result()
	if err != nil {
		return false, service.NewStoreError(backendName, "deregister", err)
	}
	if !known {
		return false, nil
	}
	if err := s.client.LRem(ctx, s.listKey(reg.ServiceType), 0, reg.ServiceURL).Err(); err != nil {
		return false, service.NewStoreError(backendName, "deregister", fmt.Errorf("lrem %s: %w", s.listKey(reg.ServiceType), err))
	}
	return true, nil
}

func (s *Store) Services(ctx context.Context) (map[string][]string, error) {
	types, err := s.client.SMembers(ctx, s.typesKey()).Result()
	if err != nil {
		return nil, service.NewStoreError(backendName, "list", err)
	}
	out := make(map[string][]string, len(types))
	if len(types) == 0 {
		return out, nil
	}
	cmds := make(map[string]*redis.StringSliceCmd, len(types))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, t := range types {
			cmds[t] = pipe.LRange(ctx, s.listKey(t), 0, -1)
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, service.NewStoreError(backendName, "list", err)
	}
	for t, cmd := range cmds {
		urls, err := cmd.Result()
		if err != nil && err != redis.Nil {
			return nil, service.NewStoreError(backendName, "list", fmt.Errorf("lrange %s: %w", s.listKey(t), err))
		}
		if urls == nil {
			urls = []string{}
		}
		out[t] = urls
	}
	return out, nil
}

func (s *Store) listKey(serviceType string) string {
	return s.namespace + "service:" + serviceType
}

func (s *Store) typesKey() string {
	return s.namespace + "services"
}
