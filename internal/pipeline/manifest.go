package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML description of a pipeline.
//
//	name: demo
//	tasks:
//	  - name: a
//	    run: echo "a() executed"
//	  - name: c
//	    run: echo "c() executed"
//	    requires: [a, b]
//	    one_shot: true
//	invoke: [a, c, d]
type Manifest struct {
	Name   string         `yaml:"name"`
	Tasks  []ManifestTask `yaml:"tasks"`
	Invoke []string       `yaml:"invoke,omitempty"`
}

// ManifestTask declares one task: a shell command gated on the tasks it
// requires.
type ManifestTask struct {
	Name     string   `yaml:"name"`
	Run      string   `yaml:"run"`
	Requires []string `yaml:"requires,omitempty"`
	OneShot  bool     `yaml:"one_shot,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest's structure. Cycles in the dependency
// relation are not checked here; they are caught when the pipeline is
// built.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest is missing a pipeline name")
	}
	if len(m.Tasks) == 0 {
		return fmt.Errorf("manifest %q declares no tasks", m.Name)
	}

	seen := make(map[string]bool, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.Name == "" {
			return fmt.Errorf("manifest %q contains a task with no name", m.Name)
		}
		if seen[task.Name] {
			return fmt.Errorf("duplicate task name %q", task.Name)
		}
		seen[task.Name] = true
		if task.Run == "" {
			return fmt.Errorf("task %q has no run command", task.Name)
		}
	}

	for _, task := range m.Tasks {
		for _, dep := range task.Requires {
			if !seen[dep] {
				return fmt.Errorf("task %q requires undefined task %q", task.Name, dep)
			}
		}
	}
	for _, name := range m.Invoke {
		if !seen[name] {
			return fmt.Errorf("invoke list references undefined task %q", name)
		}
	}

	return nil
}

// Pipeline builds a runnable pipeline from the manifest, wiring each
// task's run command as its guarded action.
func (m *Manifest) Pipeline() (*Pipeline, error) {
	b := NewBuilder(m.Name)
	for _, task := range m.Tasks {
		if task.OneShot {
			b.AddOneShotTask(task.Name, CommandAction(task.Name, task.Run))
		} else {
			b.AddTask(task.Name, CommandAction(task.Name, task.Run))
		}
		for _, dep := range task.Requires {
			b.AddDependency(task.Name, dep)
		}
	}
	if len(m.Invoke) > 0 {
		b.InvocationOrder(m.Invoke...)
	}
	return b.Build()
}
