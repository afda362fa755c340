// FILE: strata/builder.go
package strata

import "fmt"

// Builder accumulates an ordered list of configuration sources plus a
// shared property bag, then composes them into a Root. Registration order
// is precedence order: later sources override earlier ones.
type Builder struct {
	sources    []Source
	properties map[string]any
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	return &Builder{properties: make(map[string]any)}
}

// Add appends a source to the ordered source list. No deduplication or
// validation is performed.
func (b *Builder) Add(source Source) *Builder {
	b.sources = append(b.sources, source)
	return b
}

// Sources returns the registered sources in order.
func (b *Builder) Sources() []Source {
	return b.sources
}

// Properties returns the shared key/value collection sources may consult
// while building their providers.
func (b *Builder) Properties() map[string]any {
	return b.properties
}

// SetProperty stores a shared property for sources to consume.
func (b *Builder) SetProperty(key string, value any) *Builder {
	b.properties[key] = value
	return b
}

// Build instantiates every source into a provider in order, performs the
// initial load of each, and returns the composed Root. If any provider
// fails to load, the whole build fails with an error naming every failing
// provider.
func (b *Builder) Build() (*Root, error) {
	providers := make([]Provider, len(b.sources))
	for i, s := range b.sources {
		providers[i] = s.Build(b)
	}
	return NewRoot(providers)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Root {
	root, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("strata: build failed: %v", err))
	}
	return root
}

// AddInMemory adds an in-memory source with the given key/value pairs.
func (b *Builder) AddInMemory(data map[string]string) *Builder {
	return b.Add(NewMemorySource(data))
}

// AddEnv adds environment variables with the given prefix as a source.
// The prefix is stripped from matching variable names.
func (b *Builder) AddEnv(prefix string) *Builder {
	return b.Add(&EnvSource{Prefix: prefix})
}

// AddCommandLine adds command-line arguments as a source. switchMappings
// maps "-x" and "--long" switches to configuration keys and may be nil.
func (b *Builder) AddCommandLine(args []string, switchMappings map[string]string) *Builder {
	return b.Add(NewCommandLineSource(args, switchMappings))
}

// AddConfiguration chains an existing configuration in as a source.
func (b *Builder) AddConfiguration(c Configuration) *Builder {
	return b.Add(&ChainedSource{Configuration: c})
}

// AddStruct adds a Go value (struct, map, slice, or scalar tree) as a
// source, flattened into configuration keys.
func (b *Builder) AddStruct(value any) *Builder {
	return b.Add(&StructSource{Value: value})
}

// AddJSONFile adds a required JSON file source. Use NewJSONFile for
// optional or reloadable files.
func (b *Builder) AddJSONFile(path string) *Builder {
	return b.Add(NewJSONFile(path))
}

// AddTOMLFile adds a required TOML file source.
func (b *Builder) AddTOMLFile(path string) *Builder {
	return b.Add(NewTOMLFile(path))
}

// AddYAMLFile adds a required YAML file source.
func (b *Builder) AddYAMLFile(path string) *Builder {
	return b.Add(NewYAMLFile(path))
}

// AddINIFile adds a required INI file source.
func (b *Builder) AddINIFile(path string) *Builder {
	return b.Add(NewINIFile(path))
}

// AddXMLFile adds a required XML file source.
func (b *Builder) AddXMLFile(path string) *Builder {
	return b.Add(NewXMLFile(path))
}
