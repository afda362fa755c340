// Package strata composes application configuration from layered sources:
// in-memory maps, environment variables, command-line arguments, files
// (JSON, TOML, YAML, INI, XML), existing configurations, and Go structs.
//
// Sources are added to a Builder in order; later sources override earlier
// ones. The built Root exposes the merged key/value tree through
// colon-delimited hierarchical keys with case-insensitive lookup.
//
// Features:
//   - Ordered multi-source composition, last source wins
//   - Hierarchical sections as live views over the merged tree
//   - Reload on demand and automatic reload on file change (debounced)
//   - Single-fire change tokens for observing reloads
//   - Typed binding of sections onto arbitrary Go structs
//   - Weakly-typed decoding via mapstructure for lenient targets
//
// Quick start:
//
//	root, err := strata.NewBuilder().
//	    AddJSONFile("appsettings.json").
//	    AddEnv("APP_").
//	    AddCommandLine(os.Args[1:], nil).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	type ServerConfig struct {
//	    Host string
//	    Port int
//	}
//
//	cfg, err := strata.Reify[ServerConfig](root.Section("Server"))
//
// Keys use ":" as the hierarchy delimiter. Use CombinePath rather than
// concatenating strings when constructing keys by hand.
package strata
