package tournamentdb

import (
	"context"
	"path"
	"time"

	"github.com/Rxriddqd/iddqd/internal/storage/kv"
)

// fakeKV is an in-memory stand-in for the key-value client. Keys returns
// matches in insertion order, which deliberately does not track round
// numbering; the store must sort.
type fakeKV struct {
	values   map[string]string
	hashes   map[string]map[string]string
	keyOrder []string

	failAll error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		values: map[string]string{},
		hashes: map[string]map[string]string{},
	}
}

func (f *fakeKV) trackKey(key string) {
	for _, k := range f.keyOrder {
		if k == key {
			return
		}
	}
	f.keyOrder = append(f.keyOrder, key)
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.failAll != nil {
		return "", f.failAll
	}
	v, ok := f.values[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.values[key] = value
	f.trackKey(key)
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.values, key)
	delete(f.hashes, key)
	return nil
}

func (f *fakeKV) HSet(ctx context.Context, key, field, value string) error {
	if f.failAll != nil {
		return f.failAll
	}
	if f.hashes[key] == nil {
		f.hashes[key] = map[string]string{}
	}
	f.hashes[key][field] = value
	return nil
}

func (f *fakeKV) HGet(ctx context.Context, key, field string) (string, error) {
	if f.failAll != nil {
		return "", f.failAll
	}
	v, ok := f.hashes[key][field]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := map[string]string{}
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []string
	for _, key := range f.keyOrder {
		if _, ok := f.values[key]; !ok {
			continue
		}
		if matched, _ := path.Match(pattern, key); matched {
			out = append(out, key)
		}
	}
	return out, nil
}

var _ KV = (*fakeKV)(nil)
