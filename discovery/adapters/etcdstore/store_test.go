package etcdstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/interfaces"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

var _ interfaces.Store = (*Store)(nil)

// fakeKV keeps keys in creation order, which is what Services asks etcd to sort by.
type fakeKV struct {
	clientv3.KV

	mu   sync.Mutex
	keys []string
	vals map[string]string
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{vals: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	prefix := clientv3.OpGet(key, opts...).RangeBytes() != nil
	resp := &clientv3.GetResponse{}
	for _, k := range f.keys {
		if k == key || (prefix && strings.HasPrefix(k, key)) {
			resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{Key: []byte(k), Value: []byte(f.vals[k])})
		}
	}
	return resp, nil
}

func (f *fakeKV) Txn(context.Context) clientv3.Txn {
	return &fakeTxn{kv: f}
}

func (f *fakeKV) apply(ops []clientv3.Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, op := range ops {
		k := string(op.KeyBytes())
		switch {
		case op.IsPut():
			if _, ok := f.vals[k]; !ok {
				f.keys = append(f.keys, k)
			}
			f.vals[k] = string(op.ValueBytes())
		case op.IsDelete():
			delete(f.vals, k)
			for i, existing := range f.keys {
				if existing == k {
					f.keys = append(f.keys[:i], f.keys[i+1:]...)
					break
				}
			}
		}
	}
	return nil
}

type fakeTxn struct {
	clientv3.Txn

	kv  *fakeKV
	ops []clientv3.Op
}

func (t *fakeTxn) Then(ops ...clientv3.Op) clientv3.Txn {
	t.ops = append(t.ops, ops...)
	return t
}

func (t *fakeTxn) Commit() (*clientv3.TxnResponse, error) {
	if err := t.kv.apply(t.ops); err != nil {
		return nil, err
	}
	return &clientv3.TxnResponse{Succeeded: true}, nil
}

func newTestStore(kv clientv3.KV) *Store {
	s := NewStore(kv, "/cg/services/")
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id%03d", n)
	}
	return s
}

func TestNewStore_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "etcdstore.store.go: etcd kv is required", func() { NewStore(nil, "/cg") })
	assert.PanicsWithValue(t, "etcdstore.store.go: prefix is required", func() { NewStore(newFakeKV(), "") })
}

func TestNewStore_IDsAreUnique(t *testing.T) {
	s := NewStore(newFakeKV(), "/cg")
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := s.newID()
		_, dup := seen[id]
		require.False(t, dup, id)
		seen[id] = struct{}{}
	}
}

func TestStore_RegisterLayout(t *testing.T) {
	kv := newFakeKV()
	s := newTestStore(kv)
	require.NoError(t, s.Register(context.Background(), domain.Registration{ServiceType: "auth_service", ServiceURL: "http://a"}))
	require.NoError(t, s.Register(context.Background(), domain.Registration{ServiceType: "auth_service", ServiceURL: "http://a"}))

	assert.Equal(t, []string{"/cg/services/auth_service", "/cg/services/auth_service/id001", "/cg/services/auth_service/id002"}, kv.keys)
	assert.Equal(t, "", kv.vals["/cg/services/auth_service"])
	assert.Equal(t, "http://a", kv.vals["/cg/services/auth_service/id002"])
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newFakeKV())
	for _, r := range []domain.Registration{
		{ServiceType: "auth_service", ServiceURL: "http://a"},
		{ServiceType: "game_service", ServiceURL: "http://g"},
		{ServiceType: "auth_service", ServiceURL: "http://b"},
		{ServiceType: "auth_service", ServiceURL: "http://a"},
	} {
		require.NoError(t, s.Register(ctx, r))
	}
	got, err := s.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"auth_service": {"http://a", "http://b", "http://a"},
		"game_service": {"http://g"},
	}, got)

	known, err := s.Deregister(ctx, domain.Registration{ServiceType: "auth_service", ServiceURL: "http://a"})
	require.NoError(t, err)
	assert.True(t, known)
	known, err = s.Deregister(ctx, domain.Registration{ServiceType: "game_service", ServiceURL: "http://g"})
	require.NoError(t, err)
	assert.True(t, known)
	known, err = s.Deregister(ctx, domain.Registration{ServiceType: "game_service", ServiceURL: "http://g"})
	require.NoError(t, err)
	assert.True(t, known, "type stays known after its last url is gone")
	known, err = s.Deregister(ctx, domain.Registration{ServiceType: "billing_service", ServiceURL: "http://x"})
	require.NoError(t, err)
	assert.False(t, known)

	got, err = s.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"auth_service": {"http://b"},
		"game_service": {},
	}, got)
}

func TestStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = assert.AnError
	s := newTestStore(kv)

	err := s.Register(ctx, domain.Registration{ServiceType: "auth_service", ServiceURL: "http://a"})
	assert.True(t, service.IsInternalServerError(err))
	assert.ErrorIs(t, err, assert.AnError)
	_, err = s.Deregister(ctx, domain.Registration{ServiceType: "auth_service", ServiceURL: "http://a"})
	assert.True(t, service.IsInternalServerError(err))
	_, err = s.Services(ctx)
	assert.True(t, service.IsInternalServerError(err))
}

func TestGroupServices(t *testing.T) {
	kv := func(k, v string) *mvccpb.KeyValue { return &mvccpb.KeyValue{Key: []byte(k), Value: []byte(v)} }
	got := groupServices("/p/", []*mvccpb.KeyValue{
		kv("/p/auth_service", ""),
		kv("/p/auth_service/1", "http://a"),
		kv("/p/game_service/2", "http://g"),
		kv("/p/game_service/3", ""),
		kv("/p/empty_service", ""),
		kv("/p/", "ignored"),
		kv("/p//4", "ignored"),
		kv("/other/auth_service/5", "http://ignored"),
		kv("/p/auth_service/", "ignored"),
	})
	assert.Equal(t, map[string][]string{
		"auth_service":  {"http://a"},
		"game_service":  {"http://g"},
		"empty_service": {},
	}, got)
}

func TestMatchingKeys(t *testing.T) {
	kvs := []*mvccpb.KeyValue{
		{Key: []byte("/p/a/1"), Value: []byte("http://a")},
		{Key: []byte("/p/a/2"), Value: []byte("http://b")},
		{Key: []byte("/p/a/3"), Value: []byte("http://a")},
	}
	assert.Equal(t, []string{"/p/a/1", "/p/a/3"}, matchingKeys(kvs, "http://a"))
	assert.Nil(t, matchingKeys(kvs, "http://z"))
}
