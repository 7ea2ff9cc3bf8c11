package adapters

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// mirrorEvent is one etcd change translated to registry terms.
type mirrorEvent struct {
	put     bool
	key     string
	service domain.ServiceType
	url     domain.InstanceURL
}

// EtcdSource mirrors "<prefix>/<type>/<id>" → url entries into the registry: it loads the prefix, then
// follows the watch from the next revision, reloading whenever the watch breaks. A PUT registers the url, a DELETE deregisters the url last seen
// under that key. Keys outside the layout are ignored.
type EtcdSource struct {
	kv        clientv3.KV
	watcher   clientv3.Watcher
	prefix    string
	registry  interfaces.Registry
	logger    log.Logger
	resyncMin time.Duration
	resyncMax time.Duration

	mu    sync.Mutex
	known map[string]mirrorEvent
}

// NewEtcdSource creates the mirror. Panics on nil client/registry/logger or empty prefix.
//
// Called from cmd/main when ETCD_ENDPOINTS is set; Run is started in its own goroutine.
func NewEtcdSource(client *clientv3.Client, prefix string, registry interfaces.Registry, logger log.Logger) *EtcdSource {
	c := helpers.NilPanic(client, "adapters.etcd_source.go: etcd client is required")
	return &EtcdSource{
		kv:        c,
		watcher:   c,
		prefix:    strings.TrimSuffix(helpers.StrPanic(prefix, "adapters.etcd_source.go: prefix is required"), "/") + "/",
		registry:  helpers.NilPanic(registry, "adapters.etcd_source.go: registry is required"),
		logger:    log.With(helpers.NilPanic(logger, "adapters.etcd_source.go: logger is required"), "component", "etcd_source"),
		resyncMin: 500 * time.Millisecond,
		resyncMax: 30 * time.Second,
		known:     make(map[string]mirrorEvent),
	}
}

// Run mirrors the prefix until ctx is done. A failed load or a broken watch (compaction, lost leader, closed
// channel) is followed by a full reload and a new watch, after a backoff doubling from resyncMin up to
// resyncMax. The backoff resets once a load succeeds.
//
// Returns: ctx.Err().
func (s *EtcdSource) Run(ctx context.Context) error {
	backoff := s.resyncMin
	for {
		loaded, err := s.sync(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if loaded {
			backoff = s.resyncMin
		}
		level.Warn(s.logger).Log("msg", "etcd mirror interrupted, resyncing", "err", err, "retry_in", backoff)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, s.resyncMax)
	}
}

// sync loads the prefix, reconciles it with what the mirror already applied, then follows the watch.
// loaded reports whether the load step succeeded.
func (s *EtcdSource) sync(ctx context.Context) (loaded bool, err error) {
	resp, err := s.kv.Get(ctx, s.prefix, clientv3.WithPrefix())
	if err != nil {
		return false, err
	}
	s.reconcile(resp.Kvs)
	level.Info(s.logger).Log("msg", "etcd entries loaded", "prefix", s.prefix, "count", len(resp.Kvs), "revision", resp.Header.Revision)

	watchCtx, cancel := context.WithCancel(clientv3.WithRequireLeader(ctx))
	defer cancel()
	wch := s.watcher.Watch(watchCtx, s.prefix, clientv3.WithPrefix(), clientv3.WithRev(resp.Header.Revision+1))
	for wresp := range wch {
		if err := wresp.Err(); err != nil {
			return true, err
		}
		for _, ev := range wresp.Events {
			if me, ok := translateEvent(s.prefix, ev.Type, ev.Kv); ok {
				s.apply(me)
			}
		}
	}
	return true, errors.New("etcd watch channel closed")
}

// reconcile applies a full listing: keys applied before but missing now are deregistered, the rest is put.
func (s *EtcdSource) reconcile(kvs []*mvccpb.KeyValue) {
	present := make(map[string]struct{}, len(kvs))
	var puts []mirrorEvent
	for _, kv := range kvs {
		if ev, ok := translateEvent(s.prefix, mvccpb.PUT, kv); ok {
			present[ev.key] = struct{}{}
			puts = append(puts, ev)
		}
	}
	s.mu.Lock()
	var gone []string
	for key := range s.known {
		if _, ok := present[key]; !ok {
			gone = append(gone, key)
		}
	}
	s.mu.Unlock()
	for _, key := range gone {
		s.apply(mirrorEvent{key: key})
	}
	for _, ev := range puts {
		s.apply(ev)
	}
}

// translateEvent maps one etcd key/value to a mirrorEvent. The value is only read for PUT.
func translateEvent(prefix string, typ mvccpb.Event_EventType, kv *mvccpb.KeyValue) (mirrorEvent, bool) {
	if kv == nil {
		return mirrorEvent{}, false
	}
	key := string(kv.Key)
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return mirrorEvent{}, false
	}
	service, id, ok := strings.Cut(rest, "/")
	if !ok || service == "" || id == "" {
		return mirrorEvent{}, false
	}
	ev := mirrorEvent{put: typ == mvccpb.PUT, key: key, service: domain.ServiceType(service)}
	if ev.put {
		ev.url = domain.InstanceURL(strings.TrimSpace(string(kv.Value)))
		if ev.url == "" {
			return mirrorEvent{}, false
		}
	}
	return ev, true
}

func (s *EtcdSource) apply(ev mirrorEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, seen := s.known[ev.key]
	if !ev.put {
		if !seen {
			return
		}
		delete(s.known, ev.key)
		s.registry.Deregister(prev.service, prev.url)
		return
	}
	if seen {
		if prev.url == ev.url && prev.service == ev.service {
			return
		}
		s.registry.Deregister(prev.service, prev.url)
	}
	s.known[ev.key] = ev
	s.registry.Register(ev.service, ev.url)
}
