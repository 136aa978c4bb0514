package dossier

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

// Processor encodes and decodes records of one type with one codec and
// applies field actions at the four boundary crossings. Use Receive/Load
// for ingress and Store/Send for egress.
//
// Processors are safe for concurrent use. SetEncryptor, SetHasher and
// SetMasker may be called at any time to rotate handlers.
//
// Validation runs once, on the first boundary operation or an explicit
// Validate call. Register every required handler before then.
type Processor struct {
	rt    *RecordType
	codec Codec

	mu         sync.RWMutex
	encryptors map[EncryptAlgo]Encryptor
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker

	validateOnce sync.Once
	validateErr  error

	plans actionPlans
}

// actionPlans lists the fields each action touches, in pre-order.
type actionPlans struct {
	hash    []fieldPlan
	encrypt []fieldPlan
	mask    []fieldPlan
	redact  []fieldPlan
}

// fieldPlan locates one scalar field in the record graph.
type fieldPlan struct {
	path   []int  // field indexes from the root type down to the scalar
	name   string // dotted field path for errors
	tagVal string // algorithm, mask type, or replacement
}

// ProcessorOption configures a Processor at construction.
type ProcessorOption func(*Processor)

// WithEncryptor registers enc for algo.
func WithEncryptor(algo EncryptAlgo, enc Encryptor) ProcessorOption {
	return func(p *Processor) {
		p.encryptors[algo] = enc
	}
}

// WithHasher registers h for algo, replacing the builtin.
func WithHasher(algo HashAlgo, h Hasher) ProcessorOption {
	return func(p *Processor) {
		p.hashers[algo] = h
	}
}

// WithMasker registers m for mt, replacing the builtin.
func WithMasker(mt MaskType, m Masker) ProcessorOption {
	return func(p *Processor) {
		p.maskers[mt] = m
	}
}

// NewProcessor returns a processor for records of rt encoded with codec.
// Builtin hashers and maskers are preinstalled; encryptors must be
// supplied with WithEncryptor or SetEncryptor before Store or Load touch an
// encrypted field.
func NewProcessor(rt *RecordType, codec Codec, opts ...ProcessorOption) (*Processor, error) {
	if rt == nil {
		return nil, fmt.Errorf("%w: nil record type", ErrInvalidField)
	}
	if codec == nil {
		return nil, newConfigError(ErrMissingCodec, "", "")
	}

	p := &Processor{
		rt:         rt,
		codec:      codec,
		encryptors: make(map[EncryptAlgo]Encryptor),
		hashers:    builtinHashers(),
		maskers:    builtinMaskers(),
	}
	buildPlans(&p.plans, rt, nil, "")

	for _, opt := range opts {
		opt(p)
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), rt.name)
	return p, nil
}

// buildPlans walks rt and its nested types collecting actionable fields.
func buildPlans(plans *actionPlans, rt *RecordType, parent []int, prefix string) {
	for i, f := range rt.fields {
		path := append(append(make([]int, 0, len(parent)+1), parent...), i)
		name := f.name
		if prefix != "" {
			name = prefix + "." + f.name
		}

		if f.typ != nil {
			buildPlans(plans, f.typ, path, name)
			continue
		}

		a := f.actions
		if a.hash != "" {
			plans.hash = append(plans.hash, fieldPlan{path: path, name: name, tagVal: string(a.hash)})
		}
		if a.encrypt != "" {
			plans.encrypt = append(plans.encrypt, fieldPlan{path: path, name: name, tagVal: string(a.encrypt)})
		}
		if a.mask != "" {
			plans.mask = append(plans.mask, fieldPlan{path: path, name: name, tagVal: string(a.mask)})
		}
		if a.hasRedact {
			plans.redact = append(plans.redact, fieldPlan{path: path, name: name, tagVal: a.redact})
		}
	}
}

// RecordType returns the record type the processor handles.
func (p *Processor) RecordType() *RecordType { return p.rt }

// ContentType returns the codec's content type.
func (p *Processor) ContentType() string { return p.codec.ContentType() }

// SetEncryptor registers an encryptor for algo.
func (p *Processor) SetEncryptor(algo EncryptAlgo, enc Encryptor) *Processor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.encryptors[algo] = enc
	return p
}

// SetHasher registers a hasher for algo.
func (p *Processor) SetHasher(algo HashAlgo, h Hasher) *Processor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hashers[algo] = h
	return p
}

// SetMasker registers a masker for mt.
func (p *Processor) SetMasker(mt MaskType, m Masker) *Processor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maskers[mt] = m
	return p
}

// Validate reports the first field whose encryptor, hasher or masker is
// not registered. The result is computed once and cached.
func (p *Processor) Validate() error {
	return p.ensureValidated()
}

func (p *Processor) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		p.validateErr = p.validateCapabilities()
	})
	return p.validateErr
}

func (p *Processor) validateCapabilities() error {
	for _, plan := range p.plans.hash {
		if _, ok := p.hashers[HashAlgo(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingHasher, plan.tagVal, plan.name)
		}
	}
	for _, plan := range p.plans.encrypt {
		if _, ok := p.encryptors[EncryptAlgo(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingEncryptor, plan.tagVal, plan.name)
		}
	}
	for _, plan := range p.plans.mask {
		if _, ok := p.maskers[MaskType(plan.tagVal)]; !ok {
			return newConfigError(ErrMissingMasker, plan.tagVal, plan.name)
		}
	}
	return nil
}

// Receive decodes data and hashes every Hash field. Use for records
// arriving from external sources.
func (p *Processor) Receive(ctx context.Context, data []byte) (*Record, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitReceiveStart(ctx, p.codec.ContentType(), p.rt.name)

	rec, err := p.receive(data)
	emitReceiveComplete(ctx, p.codec.ContentType(), p.rt.name, time.Since(start), len(p.plans.hash), err)
	return rec, err
}

func (p *Processor) receive(data []byte) (*Record, error) {
	rec, err := decode(p.codec, data, p.rt)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, plan := range p.plans.hash {
		h, ok := p.hashers[HashAlgo(plan.tagVal)]
		if !ok {
			return nil, newConfigError(ErrMissingHasher, plan.tagVal, plan.name)
		}
		rec, err = rewrite(rec, plan.path, func(s string) (string, error) {
			out, err := h.Hash([]byte(s))
			if err != nil {
				return "", newTransformError(ErrHash, "hash", plan.name, err)
			}
			return out, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Load decodes data and decrypts every Encrypt field. Use for records
// read back from storage.
func (p *Processor) Load(ctx context.Context, data []byte) (*Record, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitLoadStart(ctx, p.codec.ContentType(), p.rt.name)

	rec, err := p.load(data)
	emitLoadComplete(ctx, p.codec.ContentType(), p.rt.name, time.Since(start), len(p.plans.encrypt), err)
	return rec, err
}

func (p *Processor) load(data []byte) (*Record, error) {
	rec, err := decode(p.codec, data, p.rt)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, plan := range p.plans.encrypt {
		enc, ok := p.encryptors[EncryptAlgo(plan.tagVal)]
		if !ok {
			return nil, newConfigError(ErrMissingEncryptor, plan.tagVal, plan.name)
		}
		rec, err = rewrite(rec, plan.path, func(s string) (string, error) {
			ciphertext, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return "", newTransformError(ErrDecrypt, "decrypt", plan.name, err)
			}
			plaintext, err := enc.Decrypt(ciphertext)
			if err != nil {
				return "", newTransformError(ErrDecrypt, "decrypt", plan.name, err)
			}
			return string(plaintext), nil
		})
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Store encrypts every Encrypt field and encodes the result. Use for
// records going to storage. rec is not modified.
func (p *Processor) Store(ctx context.Context, rec *Record) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitStoreStart(ctx, p.codec.ContentType(), p.rt.name)

	data, err := p.store(rec)
	emitStoreComplete(ctx, p.codec.ContentType(), p.rt.name, len(data), time.Since(start), len(p.plans.encrypt), err)
	return data, err
}

func (p *Processor) store(rec *Record) ([]byte, error) {
	if err := p.checkType(rec); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var err error
	for _, plan := range p.plans.encrypt {
		enc, ok := p.encryptors[EncryptAlgo(plan.tagVal)]
		if !ok {
			return nil, newConfigError(ErrMissingEncryptor, plan.tagVal, plan.name)
		}
		rec, err = rewrite(rec, plan.path, func(s string) (string, error) {
			ciphertext, err := enc.Encrypt([]byte(s))
			if err != nil {
				return "", newTransformError(ErrEncrypt, "encrypt", plan.name, err)
			}
			return base64.StdEncoding.EncodeToString(ciphertext), nil
		})
		if err != nil {
			return nil, err
		}
	}
	return encode(p.codec, rec)
}

// Send masks every Mask field, redacts every Redact field and encodes the
// result. Use for records leaving for external destinations. rec is not
// modified.
func (p *Processor) Send(ctx context.Context, rec *Record) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitSendStart(ctx, p.codec.ContentType(), p.rt.name)

	data, err := p.send(rec)
	emitSendComplete(ctx, p.codec.ContentType(), p.rt.name, len(data), time.Since(start),
		len(p.plans.mask), len(p.plans.redact), err)
	return data, err
}

func (p *Processor) send(rec *Record) ([]byte, error) {
	if err := p.checkType(rec); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var err error
	for _, plan := range p.plans.mask {
		m, ok := p.maskers[MaskType(plan.tagVal)]
		if !ok {
			return nil, newConfigError(ErrMissingMasker, plan.tagVal, plan.name)
		}
		rec, err = rewrite(rec, plan.path, func(s string) (string, error) {
			return m.Mask(s), nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, plan := range p.plans.redact {
		replacement := plan.tagVal
		rec, err = rewrite(rec, plan.path, func(string) (string, error) {
			return replacement, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return encode(p.codec, rec)
}

func (p *Processor) checkType(rec *Record) error {
	if rec != nil && rec.typ != p.rt {
		return fmt.Errorf("%w: processor for %s got %s", ErrTypeMismatch, p.rt.name, rec.typ.name)
	}
	return nil
}

// rewrite returns r with the string scalar at path replaced by fn's result.
// Records along the path are copied, never modified. Paths that end in a
// non-string value or pass through a nested field holding no record leave r
// unchanged.
func rewrite(r *Record, path []int, fn func(string) (string, error)) (*Record, error) {
	if r == nil {
		return nil, nil
	}

	i := path[0]
	v := r.values[i]
	if len(path) > 1 {
		if !v.IsRecord() {
			return r, nil
		}
		child, err := rewrite(v.Record(), path[1:], fn)
		if err != nil {
			return nil, err
		}
		return r.with(i, ValueOf(child)), nil
	}

	s, ok := v.Scalar().(string)
	if !ok || v.IsRecord() {
		return r, nil
	}
	out, err := fn(s)
	if err != nil {
		return nil, err
	}
	return r.with(i, ValueOf(out)), nil
}
