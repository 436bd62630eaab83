// Package datafix provides bidirectional codecs over pluggable representation
// backends, with rewrite rules for repairing data written by older schemas.
//
// A Codec[T, R] converts Go values of type T into nodes of a representation R
// and back. The representation is abstracted by Ops[R], a small capability
// set over six shapes: number, string, boolean, list, map and unit. The same
// codec therefore runs unchanged against the in-memory tree backend or
// directly against YAML nodes.
//
// # Building Codecs
//
// Primitive codecs cover Go numbers, strings, booleans and the unit value.
// Combinators derive new codecs from existing ones:
//
//	XMap       relabel a codec through a pair of inverse functions
//	Pair       a two-element map with the keys "left" and "right"
//	ListOf     homogeneous slices
//	Bounded    reject values outside a Range
//	TryElse    fall back to a second codec
//	OrElse     substitute a default when decoding fails
//	EitherOf   a union of two unrelated types
//	Dispatch   choose a codec per value and per node
//	Recursive  self-referential structures
//
// Records are assembled from field descriptors:
//
//	volume := datafix.FieldOf("volume", datafix.Int[tree.Value](), func(c Config) int { return c.Volume })
//	theme := datafix.OptionalFieldOf("theme", datafix.String[tree.Value](), func(c Config) *string { return c.Theme })
//
//	codec := datafix.NewRecord[Config, tree.Value]().
//	    With(volume, theme).
//	    Build(func(a datafix.Args) (Config, error) {
//	        return Config{Volume: volume.From(a), Theme: theme.From(a)}, nil
//	    })
//
// Unknown keys are ignored on decode. Optional fields are omitted when nil.
//
// # Rewrite Rules
//
// A Rule rewrites a stored representation into the shape the current codec
// expects. Fixed applies a rule in place before every decode:
//
//	upgraded := datafix.Fixed(codec, datafix.Rules(
//	    datafix.RenameField[tree.Value]("vol", "volume"),
//	    datafix.DefaultField("theme", func(ops datafix.Ops[tree.Value]) tree.Value {
//	        return ops.CreateString("dark")
//	    }),
//	))
//
// Which rules apply to which stored data is the caller's decision.
//
// # Processors
//
// A Processor binds a codec, a backend and a wire Format. Store encodes and
// marshals; Load unmarshals, applies configured rules and decodes:
//
//	proc := datafix.NewProcessor(codec, tree.Ops{}, json.New(),
//	    datafix.WithRules(datafix.RenameField[tree.Value]("vol", "volume")),
//	)
//	data, err := proc.Store(ctx, cfg)
//	cfg, err = proc.Load(ctx, data)
//
// Formats are provided by the json, msgpack and bson packages for tree values
// and by the yaml package for YAML nodes.
//
// # Errors
//
// Failures are reported with typed errors that unwrap to sentinels:
//
//	errors.Is(err, datafix.ErrShapeMismatch)
//	errors.Is(err, datafix.ErrKeyNotFound)
//	errors.Is(err, datafix.ErrValidation)
//
// Record and list codecs prefix errors with the failing field key or element
// index, so a nested failure reads like a path.
//
// # Observability
//
// Processors emit capitan signals for store, load and repair operations.
// Codecs and rules are pure and emit nothing.
package datafix
