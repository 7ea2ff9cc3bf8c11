package etcdstore

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const backendName = "etcd"

// Store keeps one key per registration, "<prefix>/<type>/<id>" → url, so duplicates survive, and a marker key
// "<prefix>/<type>" with an empty value that keeps a type known after its last url is gone. The gateway
// watches the same prefix and ignores the marker keys.
type Store struct {
	kv     clientv3.KV
	prefix string
	newID  func() string
}

// NewStore creates the etcd store. Panics on nil kv or empty prefix.
func NewStore(kv clientv3.KV, prefix string) *Store {
	var seq atomic.Uint64
	return &Store{
		kv:     service.NilPanic(kv, "etcdstore.store.go: etcd kv is required"),
		prefix: strings.TrimSuffix(service.StrPanic(prefix, "etcdstore.store.go: prefix is required"), "/"),
		newID: func() string {
			return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(seq.Add(1), 36)
		},
	}
}

func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	_, err := s.kv.Txn(ctx).Then(
		clientv3.OpPut(s.markerKey(reg.ServiceType), ""),
		clientv3.OpPut(s.markerKey(reg.ServiceType)+"/"+s.newID(), reg.ServiceURL),
	).Commit()
	if err != nil {
		return service.NewStoreError(backendName, "register", err)
	}
	return nil
}

// Deregister deletes every key of the type whose value is the url, in one transaction.
func (s *Store) Deregister(ctx context.Context, reg domain.Registration) (bool, error) {
	marker, err := s.kv.Get(ctx, s.markerKey(reg.ServiceType))
	if err != nil {
		return false, service.NewStoreError(backendName, "deregister", err)
	}
	if len(marker.Kvs) == 0 {
		return false, nil
	}
	resp, err := s.kv.Get(ctx, s.markerKey(reg.ServiceType)+"/", clientv3.WithPrefix())
	if err != nil {
		return false, service.NewStoreError(backendName, "deregister", err)
	}
	keys := matchingKeys(resp.Kvs, reg.ServiceURL)
	if len(keys) == 0 {
		return true, nil
	}
	ops := make([]clientv3.Op, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, clientv3.OpDelete(k))
	}
	if _, err := s.kv.Txn(ctx).Then(ops...).Commit(); err != nil {
		return false, service.NewStoreError(backendName, "deregister", err)
	}
	return true, nil
}

// Services lists the prefix in creation order.
func (s *Store) Services(ctx context.Context) (map[string][]string, error) {
	resp, err := s.kv.Get(ctx, s.prefix+"/",
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByCreateRevision, clientv3.SortAscend),
	)
	if err != nil {
		return nil, service.NewStoreError(backendName, "list", err)
	}
	return groupServices(s.prefix+"/", resp.Kvs), nil
}

func (s *Store) markerKey(serviceType string) string {
	return s.prefix + "/" + serviceType
}

// groupServices folds marker and registration keys under prefix into the type → urls map, keeping kvs order.
func groupServices(prefix string, kvs []*mvccpb.KeyValue) map[string][]string {
	out := make(map[string][]string)
	for _, kv := range kvs {
		rest, ok := strings.CutPrefix(string(kv.Key), prefix)
		if !ok || rest == "" {
			continue
		}
		serviceType, id, isEntry := strings.Cut(rest, "/")
		if serviceType == "" {
			continue
		}
		if _, seen := out[serviceType]; !seen {
			out[serviceType] = []string{}
		}
		if isEntry && id != "" && len(kv.Value) > 0 {
			out[serviceType] = append(out[serviceType], string(kv.Value))
		}
	}
	return out
}

func matchingKeys(kvs []*mvccpb.KeyValue, url string) []string {
	var keys []string
	for _, kv := range kvs {
		if string(kv.Value) == url {
			keys = append(keys, string(kv.Key))
		}
	}
	return keys
}
