package pkg

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

// PluginFactory defines the function signature for creating a plugin.
type PluginFactory func(client *http.Client, timeout time.Duration) Plugin

var (
	pluginRegistry = make(map[string]PluginFactory)
	registryMu     sync.RWMutex
)

// RegisterPlugin registers a new plugin factory. Plugins call it from init().
func RegisterPlugin(name string, factory PluginFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	pluginRegistry[name] = factory
}

// GetPluginFactory returns the factory registered under name.
func GetPluginFactory(name string) (PluginFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := pluginRegistry[name]
	return f, ok
}

// RegisteredPlugins returns the names of all registered plugins, sorted.
func RegisteredPlugins() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(pluginRegistry))
	for name := range pluginRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
