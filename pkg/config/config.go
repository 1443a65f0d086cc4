package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string
	Log LogConfig

	Scheduler SchedulerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// LevelParams holds the population/generation/mutation tuning for one
// optimization level (low, med, high).
type LevelParams struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
}

// FitnessWeights are the multi-objective weights applied when scoring a
// chromosome: Conflict, Util, Green, Fatigue, summing to 1.0.
type FitnessWeights struct {
	Conflict float64
	Util     float64
	Green    float64
	Fatigue  float64
}

// SchedulerConfig holds every tunable the pipeline needs: grid dimensions,
// genetic-algorithm parameters by optimization level, fitness weights,
// worker pool sizing, and NEP compliance defaults.
type SchedulerConfig struct {
	Days          int
	PeriodsPerDay int
	PeriodLabels  []string
	DayNames      []string

	TournamentSize    int
	CrossoverRate     float64
	ElitismFraction   float64
	InitialPerturbRate float64
	EarlyStopFitness  float64
	FacultyTargetHours int
	RoomTargetHours    int

	Levels map[string]LevelParams
	Weights FitnessWeights

	FitnessWorkers  int
	DetectorWorkers int

	NEPCategories         []NEPCategory
	TeacherEducationMin   TeacherEducationMinimums
}

// NEPCategory is one FYUP/ITEP credit-category threshold triple.
type NEPCategory struct {
	Name       string
	MinPercent float64
	MaxPercent float64
	MinCredits int
}

// TeacherEducationMinimums are the B.Ed./M.Ed. course-percentage floors.
type TeacherEducationMinimums struct {
	PedagogyPercent        float64
	SubjectKnowledgePercent float64
	PracticumPercent       float64
	ElectivesPercent       float64
	PracticumHoursMin      int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Days:          v.GetInt("SCHEDULER_DAYS"),
		PeriodsPerDay: v.GetInt("SCHEDULER_PERIODS_PER_DAY"),
		PeriodLabels:  splitAndTrim(v.GetString("SCHEDULER_PERIOD_LABELS")),
		DayNames:      splitAndTrim(v.GetString("SCHEDULER_DAY_NAMES")),

		TournamentSize:     v.GetInt("SCHEDULER_TOURNAMENT_SIZE"),
		CrossoverRate:      v.GetFloat64("SCHEDULER_CROSSOVER_RATE"),
		ElitismFraction:    v.GetFloat64("SCHEDULER_ELITISM_FRACTION"),
		InitialPerturbRate: v.GetFloat64("SCHEDULER_INITIAL_PERTURB_RATE"),
		EarlyStopFitness:   v.GetFloat64("SCHEDULER_EARLY_STOP_FITNESS"),
		FacultyTargetHours: v.GetInt("SCHEDULER_FACULTY_TARGET_HOURS"),
		RoomTargetHours:    v.GetInt("SCHEDULER_ROOM_TARGET_HOURS"),

		Levels: map[string]LevelParams{
			"low": {
				PopulationSize: v.GetInt("SCHEDULER_LOW_POPULATION"),
				Generations:    v.GetInt("SCHEDULER_LOW_GENERATIONS"),
				MutationRate:   v.GetFloat64("SCHEDULER_LOW_MUTATION_RATE"),
			},
			"med": {
				PopulationSize: v.GetInt("SCHEDULER_MED_POPULATION"),
				Generations:    v.GetInt("SCHEDULER_MED_GENERATIONS"),
				MutationRate:   v.GetFloat64("SCHEDULER_MED_MUTATION_RATE"),
			},
			"high": {
				PopulationSize: v.GetInt("SCHEDULER_HIGH_POPULATION"),
				Generations:    v.GetInt("SCHEDULER_HIGH_GENERATIONS"),
				MutationRate:   v.GetFloat64("SCHEDULER_HIGH_MUTATION_RATE"),
			},
		},
		Weights: FitnessWeights{
			Conflict: v.GetFloat64("SCHEDULER_WEIGHT_CONFLICT"),
			Util:     v.GetFloat64("SCHEDULER_WEIGHT_UTIL"),
			Green:    v.GetFloat64("SCHEDULER_WEIGHT_GREEN"),
			Fatigue:  v.GetFloat64("SCHEDULER_WEIGHT_FATIGUE"),
		},

		FitnessWorkers:  v.GetInt("SCHEDULER_FITNESS_WORKERS"),
		DetectorWorkers: v.GetInt("SCHEDULER_DETECTOR_WORKERS"),

		NEPCategories: []NEPCategory{
			{Name: "major", MinPercent: 40, MaxPercent: 50, MinCredits: 64},
			{Name: "minor", MinPercent: 20, MaxPercent: 30, MinCredits: 32},
			{Name: "skill", MinPercent: 10, MaxPercent: 20, MinCredits: 16},
			{Name: "ability_enhancement", MinPercent: 8, MaxPercent: 15, MinCredits: 12},
			{Name: "value_added", MinPercent: 5, MaxPercent: 15, MinCredits: 8},
		},
		TeacherEducationMin: TeacherEducationMinimums{
			PedagogyPercent:         v.GetFloat64("SCHEDULER_TE_PEDAGOGY_MIN"),
			SubjectKnowledgePercent: v.GetFloat64("SCHEDULER_TE_SUBJECT_KNOWLEDGE_MIN"),
			PracticumPercent:        v.GetFloat64("SCHEDULER_TE_PRACTICUM_MIN"),
			ElectivesPercent:        v.GetFloat64("SCHEDULER_TE_ELECTIVES_MIN"),
			PracticumHoursMin:       v.GetInt("SCHEDULER_TE_PRACTICUM_HOURS_MIN"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_DAYS", 5)
	v.SetDefault("SCHEDULER_PERIODS_PER_DAY", 8)
	v.SetDefault("SCHEDULER_PERIOD_LABELS", "09:00-10:00,10:00-11:00,11:00-12:00,12:00-13:00,14:00-15:00,15:00-16:00,16:00-17:00,17:00-18:00")
	v.SetDefault("SCHEDULER_DAY_NAMES", "monday,tuesday,wednesday,thursday,friday")

	v.SetDefault("SCHEDULER_TOURNAMENT_SIZE", 5)
	v.SetDefault("SCHEDULER_CROSSOVER_RATE", 0.8)
	v.SetDefault("SCHEDULER_ELITISM_FRACTION", 0.2)
	v.SetDefault("SCHEDULER_INITIAL_PERTURB_RATE", 0.3)
	v.SetDefault("SCHEDULER_EARLY_STOP_FITNESS", 99.0)
	v.SetDefault("SCHEDULER_FACULTY_TARGET_HOURS", 6)
	v.SetDefault("SCHEDULER_ROOM_TARGET_HOURS", 7)

	v.SetDefault("SCHEDULER_LOW_POPULATION", 30)
	v.SetDefault("SCHEDULER_LOW_GENERATIONS", 50)
	v.SetDefault("SCHEDULER_LOW_MUTATION_RATE", 0.2)

	v.SetDefault("SCHEDULER_MED_POPULATION", 50)
	v.SetDefault("SCHEDULER_MED_GENERATIONS", 100)
	v.SetDefault("SCHEDULER_MED_MUTATION_RATE", 0.1)

	v.SetDefault("SCHEDULER_HIGH_POPULATION", 100)
	v.SetDefault("SCHEDULER_HIGH_GENERATIONS", 150)
	v.SetDefault("SCHEDULER_HIGH_MUTATION_RATE", 0.05)

	v.SetDefault("SCHEDULER_WEIGHT_CONFLICT", 0.40)
	v.SetDefault("SCHEDULER_WEIGHT_UTIL", 0.25)
	v.SetDefault("SCHEDULER_WEIGHT_GREEN", 0.20)
	v.SetDefault("SCHEDULER_WEIGHT_FATIGUE", 0.15)

	v.SetDefault("SCHEDULER_FITNESS_WORKERS", 4)
	v.SetDefault("SCHEDULER_DETECTOR_WORKERS", 4)

	v.SetDefault("SCHEDULER_TE_PEDAGOGY_MIN", 30.0)
	v.SetDefault("SCHEDULER_TE_SUBJECT_KNOWLEDGE_MIN", 40.0)
	v.SetDefault("SCHEDULER_TE_PRACTICUM_MIN", 20.0)
	v.SetDefault("SCHEDULER_TE_ELECTIVES_MIN", 10.0)
	v.SetDefault("SCHEDULER_TE_PRACTICUM_HOURS_MIN", 100)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
