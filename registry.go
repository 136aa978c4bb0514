package dossier

import "sync"

// registryKey combines record type and codec for cache lookup.
type registryKey struct {
	rt          *RecordType
	contentType string
}

var (
	registry   = make(map[registryKey]*Processor)
	registryMu sync.RWMutex
)

// Use returns the cached processor for rt and codec's content type, building
// one with opts on first use. Options are ignored on cache hits.
func Use(rt *RecordType, codec Codec, opts ...ProcessorOption) (*Processor, error) {
	if codec == nil {
		return nil, newConfigError(ErrMissingCodec, "", "")
	}
	key := registryKey{rt: rt, contentType: codec.ContentType()}

	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	p, err := NewProcessor(rt, codec, opts...)
	if err != nil {
		return nil, err
	}
	registry[key] = p
	return p, nil
}

// Reset clears the processor registry.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Processor)
}
