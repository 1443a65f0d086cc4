package genetic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/greedy"
	"github.com/kasakgupta/timetable-scheduler/internal/rng"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Days:               5,
		PeriodsPerDay:      8,
		TournamentSize:     5,
		CrossoverRate:      0.8,
		ElitismFraction:    0.2,
		InitialPerturbRate: 0.3,
		EarlyStopFitness:   99.0,
		FacultyTargetHours: 6,
		RoomTargetHours:    7,
		FitnessWorkers:     4,
		Weights:            config.FitnessWeights{Conflict: 0.40, Util: 0.25, Green: 0.20, Fatigue: 0.15},
		Levels: map[string]config.LevelParams{
			"low": {PopulationSize: 8, Generations: 3, MutationRate: 0.2},
		},
	}
}

func buildSeedSchedule(t *testing.T) (*catalog.Catalog, config.SchedulerConfig) {
	t.Helper()
	req := dto.GenerateRequest{
		Subjects: []dto.SubjectInput{
			{ID: "sub-1", Name: "Algebra", Type: "major", Credits: 4, TheoryHours: 1, Programs: []string{"BSc"}, Semester: 1},
		},
		Faculty: []dto.FacultyInput{
			{ID: "fac-1", Name: "Dr A", TeachableSubjectIDs: []string{"sub-1"}},
		},
		StudentGroups: []dto.StudentGroupInput{
			{ID: "coh-1", Program: "BSc", Semester: 1, Strength: 40},
		},
		Rooms: []dto.RoomInput{
			{ID: "room-1", Type: "lecture", Capacity: 60},
		},
	}
	cat, err := catalog.Normalize(req)
	require.NoError(t, err)
	return cat, testSchedulerConfig()
}

func TestOptimizeImprovesOrMatchesSeedFitness(t *testing.T) {
	cat, cfg := buildSeedSchedule(t)
	greedySchedule, err := greedy.New(cfg, cat, nil).Schedule(context.Background())
	require.NoError(t, err)

	seed := int64(42)
	optimizer := New(cfg, cat, nil, rng.New(&seed), "low")
	result, err := optimizer.Optimize(context.Background(), greedySchedule)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Best.FitnessScore, 0.0)
	assert.LessOrEqual(t, result.Best.FitnessScore, 100.0)

	seedFitness := evaluate(scheduleToChromosome(greedySchedule), cfg.Weights, cfg.FacultyTargetHours, cfg.RoomTargetHours, nil).FitnessScore
	assert.GreaterOrEqual(t, result.Best.FitnessScore, seedFitness)
}

func TestOptimizeIsDeterministicForFixedSeed(t *testing.T) {
	cat, cfg := buildSeedSchedule(t)
	greedySchedule, err := greedy.New(cfg, cat, nil).Schedule(context.Background())
	require.NoError(t, err)

	seed := int64(42)
	r1, err := New(cfg, cat, nil, rng.New(&seed), "low").Optimize(context.Background(), greedySchedule)
	require.NoError(t, err)
	r2, err := New(cfg, cat, nil, rng.New(&seed), "low").Optimize(context.Background(), greedySchedule)
	require.NoError(t, err)

	assert.Equal(t, r1.Best.FitnessScore, r2.Best.FitnessScore)
	assert.Equal(t, r1.GenerationsUsed, r2.GenerationsUsed)
}

func TestChromosomeToScheduleMergesConsecutivePeriods(t *testing.T) {
	c := Chromosome{Genes: []Gene{
		{SubjectID: "s", FacultyID: "f", RoomID: "r", CohortID: "c", Day: 0, Period: 2},
		{SubjectID: "s", FacultyID: "f", RoomID: "r", CohortID: "c", Day: 0, Period: 3},
	}}
	schedule := ChromosomeToSchedule(c)
	require.Len(t, schedule.Assignments, 1)
	assert.Equal(t, 2, schedule.Assignments[0].Duration)
	assert.Equal(t, 2, schedule.Assignments[0].StartPeriod)
}

func TestCrossoverEmptyParentsReturnsCopies(t *testing.T) {
	seed := int64(1)
	optimizer := New(testSchedulerConfig(), &catalog.Catalog{}, nil, rng.New(&seed), "low")
	p1 := Chromosome{}
	p2 := Chromosome{Genes: []Gene{{SubjectID: "s"}}}
	c1, c2 := optimizer.crossover(p1, p2)
	assert.Equal(t, p1.Genes, c1.Genes)
	assert.Equal(t, p2.Genes, c2.Genes)
}
