// FILE: strata/commandline.go
package strata

import "strings"

// CommandLineSource supplies command-line arguments as configuration
// values.
//
// Arguments may take the forms "--key value", "--key=value", "-s value"
// (short switches require a mapping), and "/Switch", which is treated as
// "--Switch". Switch mapping keys must start with "-" or "--"; the mapped
// value is the configuration key to store under. Dash-separated key parts
// are pascal-cased, so "--no-build" stores the key "NoBuild".
type CommandLineSource struct {
	Args           []string
	SwitchMappings map[string]string
}

// NewCommandLineSource creates a command-line source. switchMappings may
// be nil.
func NewCommandLineSource(args []string, switchMappings map[string]string) *CommandLineSource {
	return &CommandLineSource{Args: args, SwitchMappings: switchMappings}
}

// Build implements Source. Mapping keys are matched case-insensitively;
// keys not starting with "-" or "--" are ignored. Normalization happens
// here so a CommandLineSource built as a struct literal behaves the same
// as one from NewCommandLineSource.
func (s *CommandLineSource) Build(_ *Builder) Provider {
	mappings := make(map[string]string, len(s.SwitchMappings))
	for k, v := range s.SwitchMappings {
		if strings.HasPrefix(k, "-") {
			mappings[strings.ToUpper(k)] = v
		}
	}
	return &commandLineProvider{args: s.Args, mappings: mappings}
}

type commandLineProvider struct {
	args     []string
	mappings map[string]string
	data     map[string]entry
}

func (p *commandLineProvider) Name() string { return "CommandLineProvider" }

func (p *commandLineProvider) Get(key string) (string, bool) {
	e, ok := p.data[strings.ToUpper(key)]
	return e.value, ok
}

func (p *commandLineProvider) Load() error {
	data := make(map[string]entry)

	for i := 0; i < len(p.args); i++ {
		current := p.args[i]
		var start int

		switch {
		case strings.HasPrefix(current, "--"):
			start = 2
		case strings.HasPrefix(current, "-"):
			start = 1
		case strings.HasPrefix(current, "/"):
			// "/SomeSwitch" is equivalent to "--SomeSwitch" when
			// interpreting switch mappings.
			current = "--" + current[1:]
			start = 2
		}

		var key, value string

		if sep := strings.Index(current, "="); sep >= 0 {
			segment := strings.ToUpper(current[:sep])
			if mapped, ok := p.mappings[segment]; ok {
				key = mapped
			} else if start == 1 {
				// Unmapped short switches are skipped.
				continue
			} else {
				key = current[start:sep]
			}
			value = current[sep+1:]
		} else {
			if start == 0 {
				continue
			}
			if mapped, ok := p.mappings[strings.ToUpper(current)]; ok {
				key = mapped
			} else {
				key = current[start:]
			}
			if i+1 >= len(p.args) {
				continue
			}
			i++
			value = p.args[i]
		}

		key = toPascalCaseParts(key, "-")
		data[strings.ToUpper(key)] = entry{key: key, value: value}
	}

	p.data = data
	return nil
}

func (p *commandLineProvider) ReloadToken() *ChangeToken { return NeverChanges() }

func (p *commandLineProvider) ChildKeys(earlier []string, parentPath string) []string {
	return accumulateChildKeys(p.data, earlier, parentPath)
}
