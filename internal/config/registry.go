package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownModel is returned when a model id is not present in the registry.
	ErrUnknownModel = errors.New("unknown model")
	// ErrInvalidProfile is returned when a profile is missing required fields.
	ErrInvalidProfile = errors.New("invalid model profile")
)

// StageType is the closed set of tasks a model profile can serve.
type StageType int

const (
	stageTypeUnset StageType = iota
	StageTypeTranscription
	StageTypeSummarization
	StageTypeTextGeneration
)

func (t StageType) String() string {
	switch t {
	case StageTypeTranscription:
		return "transcription"
	case StageTypeSummarization:
		return "summarization"
	case StageTypeTextGeneration:
		return "text_generation"
	default:
		return "unknown"
	}
}

// UnmarshalYAML parses a stage type string, rejecting unsupported values at
// load time rather than at dispatch time.
func (t *StageType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	switch s {
	case "transcription":
		*t = StageTypeTranscription
	case "summarization":
		*t = StageTypeSummarization
	case "text_generation":
		*t = StageTypeTextGeneration
	default:
		return fmt.Errorf("%w: unsupported stage type %q", ErrInvalidProfile, s)
	}
	return nil
}

// ModelProfile binds a model identifier to its checkpoint and inference parameters.
type ModelProfile struct {
	ID         string    `yaml:"-"`
	Type       StageType `yaml:"type"`
	Checkpoint string    `yaml:"checkpoint"`
	BinaryPath string    `yaml:"binary_path"`
	Device     string    `yaml:"device"`
	Language   string    `yaml:"language"`
	Prompt     string    `yaml:"prompt"`
	Threads    int       `yaml:"threads"`
	MaxLength  int       `yaml:"max_length"`
	MinLength  int       `yaml:"min_length"`
}

// Registry is a read-only lookup from model id to ModelProfile. It is loaded
// once at startup and passed explicitly to every component that needs it.
type Registry struct {
	profiles map[string]ModelProfile
}

// LoadRegistry reads model profiles from a YAML document mapping id -> profile.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model profiles: %w", err)
	}

	var raw map[string]ModelProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse model profiles: %w", err)
	}

	profiles := make(map[string]ModelProfile, len(raw))
	for id, p := range raw {
		p.ID = id
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}
		profiles[id] = p
	}

	return &Registry{profiles: profiles}, nil
}

// NewRegistry builds a registry from already constructed profiles. Intended
// for tests that substitute profiles without a config file.
func NewRegistry(profiles map[string]ModelProfile) *Registry {
	m := make(map[string]ModelProfile, len(profiles))
	for id, p := range profiles {
		p.ID = id
		m[id] = p
	}
	return &Registry{profiles: m}
}

// Resolve returns the profile for id. Pure lookup, no side effects.
func (r *Registry) Resolve(id string) (ModelProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return ModelProfile{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	if err := p.validate(); err != nil {
		return ModelProfile{}, err
	}
	return p, nil
}

// IDs returns all registered model ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p ModelProfile) validate() error {
	if p.Type == stageTypeUnset {
		return fmt.Errorf("%w: stage type is required", ErrInvalidProfile)
	}
	if p.Checkpoint == "" {
		return fmt.Errorf("%w: checkpoint is required", ErrInvalidProfile)
	}
	return nil
}
