package telemetry

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixtures wraps every validation failure of a fixture set.
var ErrInvalidFixtures = errors.New("telemetry: invalid fixtures")

// Fixtures is the raw, file-shaped form of the reference datasets.
type Fixtures struct {
	Monthly    []MetricSample    `yaml:"monthly" validate:"dive"`
	Skills     []SkillRating     `yaml:"skills" validate:"dive"`
	Advisories []AdvisoryMessage `yaml:"advisories" validate:"min=1,dive,required"`
	User       UserPanel         `yaml:"user"`
	Company    CompanyPanel      `yaml:"company"`
}

// Store holds the read-only datasets shared by every dashboard view.
// Accessors return copies so callers cannot mutate the shared tables.
type Store struct {
	monthly    []MetricSample
	skills     []SkillRating
	advisories []AdvisoryMessage
	user       UserPanel
	company    CompanyPanel
	version    string
}

// NewStore validates the fixtures and freezes them into a Store.
func NewStore(f Fixtures) (*Store, error) {
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixtures, err)
	}
	seen := make(map[string]struct{}, len(f.Skills))
	for _, skill := range f.Skills {
		if _, ok := seen[skill.Category]; ok {
			return nil, fmt.Errorf("%w: duplicate skill category %q", ErrInvalidFixtures, skill.Category)
		}
		seen[skill.Category] = struct{}{}
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("telemetry: fingerprint fixtures: %w", err)
	}
	sum := sha256.Sum256(raw)
	return &Store{
		version:    hex.EncodeToString(sum[:8]),
		monthly:    slices.Clone(f.Monthly),
		skills:     slices.Clone(f.Skills),
		advisories: slices.Clone(f.Advisories),
		user: UserPanel{
			Vehicle:      slices.Clone(f.User.Vehicle),
			Achievements: slices.Clone(f.User.Achievements),
		},
		company: CompanyPanel{
			KPIs:       slices.Clone(f.Company.KPIs),
			HighRisk:   slices.Clone(f.Company.HighRisk),
			SafeDriver: slices.Clone(f.Company.SafeDriver),
			Incidents:  slices.Clone(f.Company.Incidents),
			Reviews:    slices.Clone(f.Company.Reviews),
		},
	}, nil
}

// DefaultStore builds a Store from the embedded reference datasets.
func DefaultStore() *Store {
	store, err := NewStore(DefaultFixtures())
	if err != nil {
		panic(err)
	}
	return store
}

// Load returns the default store, or the YAML fixture file at path when set.
func Load(path string) (*Store, error) {
	if path == "" {
		return NewStore(DefaultFixtures())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: read fixtures: %w", err)
	}
	fixtures, err := DecodeFixtures(raw)
	if err != nil {
		return nil, err
	}
	return NewStore(fixtures)
}

// DecodeFixtures parses a YAML fixture document. Unknown keys are rejected.
func DecodeFixtures(raw []byte) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, fmt.Errorf("%w: %v", ErrInvalidFixtures, err)
	}
	return f, nil
}

// Fingerprint identifies the dataset contents. Two stores built from equal
// fixtures share a fingerprint.
func (s *Store) Fingerprint() string {
	return s.version
}

// Monthly returns the monthly samples in period order.
func (s *Store) Monthly() []MetricSample {
	return slices.Clone(s.monthly)
}

// Skills returns the skill ratings in insertion order.
func (s *Store) Skills() []SkillRating {
	return slices.Clone(s.skills)
}

// Advisories returns the advisory message sequence.
func (s *Store) Advisories() []AdvisoryMessage {
	return slices.Clone(s.advisories)
}

// UserPanel returns the static cards of the driver view.
func (s *Store) UserPanel() UserPanel {
	return UserPanel{
		Vehicle:      slices.Clone(s.user.Vehicle),
		Achievements: slices.Clone(s.user.Achievements),
	}
}

// CompanyPanel returns the static cards of the insurer view.
func (s *Store) CompanyPanel() CompanyPanel {
	return CompanyPanel{
		KPIs:       slices.Clone(s.company.KPIs),
		HighRisk:   slices.Clone(s.company.HighRisk),
		SafeDriver: slices.Clone(s.company.SafeDriver),
		Incidents:  slices.Clone(s.company.Incidents),
		Reviews:    slices.Clone(s.company.Reviews),
	}
}
