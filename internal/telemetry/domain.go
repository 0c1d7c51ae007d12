package telemetry

// MetricSample is one reporting period of driving telemetry.
type MetricSample struct {
	Period            string `yaml:"period" json:"period" validate:"required"`
	OverspeedingCount int    `yaml:"overspeeding" json:"overspeeding" validate:"gte=0"`
	HarshBrakingCount int    `yaml:"harsh_braking" json:"harsh_braking" validate:"gte=0"`
	ClaimsCount       int    `yaml:"claims" json:"claims" validate:"gte=0"`
	ReputationScore   int    `yaml:"reputation" json:"reputation" validate:"gte=0,lte=100"`
	EcoScore          int    `yaml:"eco_score" json:"eco_score" validate:"gte=0,lte=100"`
}

// SkillRating scores a single driving skill category.
type SkillRating struct {
	Category string `yaml:"category" json:"category" validate:"required"`
	Score    int    `yaml:"score" json:"score" validate:"gte=0,lte=100"`
}

// AdvisoryMessage is a short driving suggestion shown in the insight feed.
type AdvisoryMessage string

// StatCard is a labelled headline figure.
type StatCard struct {
	Label  string `yaml:"label" json:"label" validate:"required"`
	Value  string `yaml:"value" json:"value" validate:"required"`
	Accent string `yaml:"accent" json:"accent"`
	Icon   string `yaml:"icon" json:"icon"`
}

// Achievement is a badge earned by the driver.
type Achievement struct {
	Title  string `yaml:"title" json:"title" validate:"required"`
	Detail string `yaml:"detail" json:"detail"`
	Accent string `yaml:"accent" json:"accent"`
	Icon   string `yaml:"icon" json:"icon"`
}

// DriverSummary is a row in the company driver lists.
type DriverSummary struct {
	Name   string `yaml:"name" json:"name" validate:"required"`
	Detail string `yaml:"detail" json:"detail"`
	Score  string `yaml:"score" json:"score"`
}

// Incident is a recently reported driving event.
type Incident struct {
	ID       int64  `yaml:"id" json:"id" validate:"gt=0"`
	Driver   string `yaml:"driver" json:"driver" validate:"required"`
	Type     string `yaml:"type" json:"type" validate:"required"`
	Date     string `yaml:"date" json:"date" validate:"required"`
	Severity string `yaml:"severity" json:"severity" validate:"oneof=Low Medium High"`
}

// Review is a scheduled driver feedback session.
type Review struct {
	Title string `yaml:"title" json:"title" validate:"required"`
	DueIn string `yaml:"due_in" json:"due_in"`
}

// UserPanel groups the static cards of the individual driver view.
type UserPanel struct {
	Vehicle      []StatCard    `yaml:"vehicle" json:"vehicle" validate:"dive"`
	Achievements []Achievement `yaml:"achievements" json:"achievements" validate:"dive"`
}

// CompanyPanel groups the static cards of the aggregate insurer view.
type CompanyPanel struct {
	KPIs       []StatCard      `yaml:"kpis" json:"kpis" validate:"dive"`
	HighRisk   []DriverSummary `yaml:"high_risk" json:"high_risk" validate:"dive"`
	SafeDriver []DriverSummary `yaml:"safe_drivers" json:"safe_drivers" validate:"dive"`
	Incidents  []Incident      `yaml:"incidents" json:"incidents" validate:"dive"`
	Reviews    []Review        `yaml:"reviews" json:"reviews" validate:"dive"`
}
