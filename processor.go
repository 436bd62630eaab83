package datafix

import (
	"context"
	"reflect"
	"time"
)

// Processor binds a codec, a backend and a wire format for one value type.
// Use Store for egress and Load for ingress.
//
// Processors are immutable after construction and safe for concurrent use
// as long as the codec is.
type Processor[T, R any] struct {
	codec         Codec[T, R]
	ops           Ops[R]
	format        Format[R]
	rule          Rule[R]
	ruleCount     int
	fingerprinter Fingerprinter
	typeName      string
}

// processorConfig collects processor options.
type processorConfig[R any] struct {
	rules         []Rule[R]
	fingerprinter Fingerprinter
	typeName      string
}

// ProcessorOption configures a Processor.
type ProcessorOption[R any] func(*processorConfig[R])

// WithRules sets the rewrite rules Load applies, in order, before decoding.
// Which rules suit which stored data is decided by the caller.
func WithRules[R any](rules ...Rule[R]) ProcessorOption[R] {
	return func(c *processorConfig[R]) {
		c.rules = append(c.rules, rules...)
	}
}

// WithFingerprinter replaces the default BLAKE2b fingerprinter.
func WithFingerprinter[R any](f Fingerprinter) ProcessorOption[R] {
	return func(c *processorConfig[R]) {
		c.fingerprinter = f
	}
}

// WithName overrides the type name reported in signals.
func WithName[R any](name string) ProcessorOption[R] {
	return func(c *processorConfig[R]) {
		c.typeName = name
	}
}

// NewProcessor creates a Processor for T.
func NewProcessor[T, R any](codec Codec[T, R], ops Ops[R], format Format[R], opts ...ProcessorOption[R]) *Processor[T, R] {
	cfg := processorConfig[R]{
		fingerprinter: BLAKE2b(),
		typeName:      reflect.TypeFor[T]().String(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor[T, R]{
		codec:         codec,
		ops:           ops,
		format:        format,
		rule:          Rules(cfg.rules...),
		ruleCount:     len(cfg.rules),
		fingerprinter: cfg.fingerprinter,
		typeName:      cfg.typeName,
	}

	emitProcessorCreated(context.Background(), format.ContentType(), p.typeName)
	return p
}

// ContentType returns the MIME type of the processor's format.
func (p *Processor[T, R]) ContentType() string {
	return p.format.ContentType()
}

// Store encodes value and marshals the result.
func (p *Processor[T, R]) Store(ctx context.Context, value T) ([]byte, error) {
	start := time.Now()
	emitStoreStart(ctx, p.format.ContentType(), p.typeName)

	data, err := p.marshal(value)
	emitStoreComplete(ctx, p.format.ContentType(), p.typeName, len(data), time.Since(start), err)
	return data, err
}

// Load unmarshals data, repairs it with the configured rules and decodes it.
func (p *Processor[T, R]) Load(ctx context.Context, data []byte) (T, error) {
	start := time.Now()
	emitLoadStart(ctx, p.format.ContentType(), p.typeName, len(data))

	var retErr error
	defer func() {
		emitLoadComplete(ctx, p.format.ContentType(), p.typeName, time.Since(start), retErr)
	}()

	var zero T
	node, err := p.format.Unmarshal(data)
	if err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return zero, retErr
	}

	if p.ruleCount > 0 {
		node = Repair(p.ops, node, p.rule)
		emitRepairApplied(ctx, p.format.ContentType(), p.typeName, p.ruleCount)
	}

	value, err := p.codec.Decode(p.ops, &node)
	if err != nil {
		retErr = err
		return zero, retErr
	}
	return value, nil
}

// Fingerprint returns the digest of the bytes Store would produce for value.
func (p *Processor[T, R]) Fingerprint(value T) (string, error) {
	data, err := p.marshal(value)
	if err != nil {
		return "", err
	}
	return p.fingerprinter.Fingerprint(data)
}

func (p *Processor[T, R]) marshal(value T) ([]byte, error) {
	node, err := p.codec.Encode(p.ops, value)
	if err != nil {
		return nil, err
	}
	data, err := p.format.Marshal(node)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}
