package schemamerge

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"go.jacobcolvin.com/schemamerge/diag"
	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

// DefaultFileName is the name of the schema fragments searched for by
// [Merger.AddDir].
const DefaultFileName = "ConfigurationSchema.json"

// Merger accumulates schema fragments into one schema.
//
// Create instances with [New]. A Merger is not safe for concurrent use;
// fragments must be added one at a time. After any error the accumulated
// schema is unspecified and the Merger should be discarded.
type Merger struct {
	logger   *slog.Logger
	root     *Node
	draft    *jsonschema.Draft
	fileName string
	indent   int
}

// Option configures a [Merger].
type Option func(*Merger)

// WithIndent sets the number of spaces used to indent [Merger.Result].
func WithIndent(n int) Option {
	return func(m *Merger) {
		m.indent = n
	}
}

// WithFileName sets the fragment file name searched for by [Merger.AddDir].
func WithFileName(name string) Option {
	return func(m *Merger) {
		m.fileName = name
	}
}

// WithValidation makes [Merger.Result] compile the merged schema against
// the metaschema of draft. Documents that declare "$schema" are checked
// against that draft instead.
func WithValidation(draft *jsonschema.Draft) Option {
	return func(m *Merger) {
		m.draft = draft
	}
}

// WithLogger sets the logger for progress messages from [Merger.AddDir] and
// [Merger.WriteFile]. The default is [slog.Default] at the time of logging.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		m.logger = logger
	}
}

// New creates a new [Merger] with an empty accumulator.
func New(opts ...Option) *Merger {
	m := &Merger{
		root:     &Node{},
		fileName: DefaultFileName,
		indent:   2,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Add merges a decoded fragment into the accumulator. The fragment is not
// retained.
func (m *Merger) Add(source *Node) error {
	return Merge(source, m.root)
}

// AddText decodes and merges a fragment.
func (m *Merger) AddText(text string) error {
	return m.addBytes([]byte(text))
}

// AddReader reads, decodes, and merges a fragment.
func (m *Merger) AddReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return m.addBytes(data)
}

// AddFile reads, decodes, and merges the fragment at path. Errors are
// prefixed with path.
func (m *Merger) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	err = m.addBytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func (m *Merger) addBytes(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	source, err := Decode(data)
	if err != nil {
		return err
	}

	return m.Add(source)
}

func (m *Merger) log() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}

	return m.logger
}

// Root returns the accumulator. It is owned by the Merger and changes with
// every added fragment.
func (m *Merger) Root() *Node {
	return m.root
}

// Value returns the canonical form of the accumulated schema.
func (m *Merger) Value() jsonvalue.Value {
	return Canonicalize(m.root.Value())
}

// Result returns the canonical accumulated schema as indented JSON with a
// trailing newline.
func (m *Merger) Result() ([]byte, error) {
	out, err := diag.MarshalIndent(m.Value(), strings.Repeat(" ", m.indent))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	if m.draft != nil {
		err = verify(out, m.draft)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// verify compiles doc as a schema, which checks it against the metaschema.
func verify(doc []byte, draft *jsonschema.Draft) error {
	const resource = "merged.json"

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(draft)

	err = c.AddResource(resource, v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	_, err = c.Compile(resource)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	return nil
}
