package consul

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/webtop/data"
)

// ConsulBackend stores desktop state in HashiCorp Consul KV, which makes
// profiles roam between machines that share a Consul cluster.
//
// Limitations:
// - Consul KV has a 512KB limit per value, which caps filesystem snapshots
// - Best suited for shared deployments; use sqlite for a single machine
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (default: "webtop/")
	// This allows several desktops to share one cluster.
	Prefix string
}

// NewConsulBackend creates a new Consul-backed store
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "webtop/"
	}
	if !strings.HasSuffix(config.Prefix, "/") {
		config.Prefix += "/"
	}

	// Create Consul client
	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	backend := &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}

	return backend, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend
func (cb *ConsulBackend) Open(ctx context.Context) error {
	// Nothing to initialize - Consul handles connections
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// buildKey constructs the full Consul KV key from the store key
func (cb *ConsulBackend) buildKey(key string) string {
	return cb.config.Prefix + key
}

// Get returns the value stored under key.
func (cb *ConsulBackend) Get(ctx context.Context, key string) (string, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, _, err := cb.kv.Get(cb.buildKey(key), nil)
	if err != nil {
		return "", err
	}
	if pair == nil {
		return "", data.ErrNotExist
	}

	return string(pair.Value), nil
}

// Set stores a value under key, replacing any previous value.
func (cb *ConsulBackend) Set(ctx context.Context, key, value string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair := &api.KVPair{
		Key:   cb.buildKey(key),
		Value: []byte(value),
	}

	_, err := cb.kv.Put(pair, nil)
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (cb *ConsulBackend) Delete(ctx context.Context, key string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	_, err := cb.kv.Delete(cb.buildKey(key), nil)
	return err
}

// Keys returns every stored key with the given prefix in lexical order.
func (cb *ConsulBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	consulKeys, _, err := cb.kv.Keys(cb.buildKey(prefix), "", nil)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(consulKeys))
	for _, consulKey := range consulKeys {
		// Strip the store prefix to return the caller's view of the key
		keys = append(keys, strings.TrimPrefix(consulKey, cb.config.Prefix))
	}

	return keys, nil
}
