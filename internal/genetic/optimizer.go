// Package genetic implements the population-based optimizer that refines
// the greedy seed schedule against the multi-objective fitness function.
package genetic

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// Optimizer runs the genetic algorithm over a seed schedule.
type Optimizer struct {
	cfg           config.SchedulerConfig
	cat           *catalog.Catalog
	heavySubjects map[string]bool
	rng           *rand.Rand
	level         string
}

// New builds an Optimizer. level must be one of "low", "med", "high"; if it
// is absent from cfg.Levels, the fixed medium parameters (population 50,
// 100 generations, mutation rate 0.1) are used. heavySubjects holds subject
// names; they are mapped to the catalog's subject ids for fatigue scoring.
func New(cfg config.SchedulerConfig, cat *catalog.Catalog, heavySubjects []string, rng *rand.Rand, level string) *Optimizer {
	heavyNames := make(map[string]bool, len(heavySubjects))
	for _, name := range heavySubjects {
		heavyNames[name] = true
	}
	heavy := make(map[string]bool, len(heavySubjects))
	for id, s := range cat.Subjects {
		if heavyNames[s.Name] {
			heavy[id] = true
		}
	}
	return &Optimizer{cfg: cfg, cat: cat, heavySubjects: heavy, rng: rng, level: level}
}

// Result is the outcome of one optimization run.
type Result struct {
	Best            Chromosome
	GenerationsUsed int
	PopulationSize  int
}

func (o *Optimizer) params() config.LevelParams {
	if p, ok := o.cfg.Levels[o.level]; ok {
		return p
	}
	return config.LevelParams{PopulationSize: 50, Generations: 100, MutationRate: 0.1}
}

// Optimize runs the GA seeded from seed, checking for cancellation at
// generation boundaries, and returns the best chromosome ever seen.
func (o *Optimizer) Optimize(ctx context.Context, seed models.Schedule) (Result, error) {
	params := o.params()
	population := o.initializePopulation(seed, params.PopulationSize)

	var best Chromosome
	bestFitness := -1.0
	generationsUsed := params.Generations

	for gen := 0; gen < params.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			generationsUsed = gen
			break
		}

		if err := o.evaluatePopulation(ctx, population); err != nil {
			generationsUsed = gen
			break
		}

		for _, c := range population {
			if c.FitnessScore > bestFitness {
				bestFitness = c.FitnessScore
				best = c.Clone()
			}
		}

		if bestFitness >= o.cfg.EarlyStopFitness {
			generationsUsed = gen + 1
			break
		}

		population = o.nextGeneration(population, params)
	}

	return Result{Best: best, GenerationsUsed: generationsUsed, PopulationSize: params.PopulationSize}, nil
}

// evaluatePopulation farms fitness evaluation across a bounded worker pool.
// Chromosomes are read-only for the duration; each goroutine writes only
// into its own slice index, so there is no shared mutable state to guard.
func (o *Optimizer) evaluatePopulation(ctx context.Context, population []Chromosome) error {
	workers := o.cfg.FitnessWorkers
	if workers <= 0 {
		workers = 4
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range population {
		i := i
		g.Go(func() error {
			population[i] = evaluate(population[i], o.cfg.Weights, o.cfg.FacultyTargetHours, o.cfg.RoomTargetHours, o.heavySubjects)
			return nil
		})
	}

	return g.Wait()
}

func (o *Optimizer) initializePopulation(seed models.Schedule, size int) []Chromosome {
	base := scheduleToChromosome(seed)
	population := make([]Chromosome, 0, size)
	population = append(population, base)

	for i := 1; i < size; i++ {
		if o.rng.Float64() < 0.5 {
			mutated := base.Clone()
			o.mutate(&mutated, o.cfg.InitialPerturbRate)
			population = append(population, mutated)
		} else {
			population = append(population, o.randomChromosome())
		}
	}
	return population
}

// scheduleToChromosome explodes each Assignment into one Gene per occupied
// period, per the duration-representation decision recorded in DESIGN.md.
func scheduleToChromosome(s models.Schedule) Chromosome {
	var genes []Gene
	for _, a := range s.Assignments {
		for _, slot := range a.Slots() {
			genes = append(genes, Gene{
				SubjectID:        a.SubjectID,
				FacultyID:        a.FacultyID,
				RoomID:           a.RoomID,
				CohortID:         a.CohortID,
				RequiredRoomType: a.RequiredRoomType,
				Day:              slot.Day,
				Period:           slot.Period,
			})
		}
	}
	return Chromosome{Genes: genes}
}

// randomChromosome draws a diversity-seed chromosome of length 3*|subjects|
// uniformly over the catalog domain, per spec §4.3 (retained as-is; the
// frequency-unaware gene count only affects diversity, not final
// feasibility, which the resolver repairs).
func (o *Optimizer) randomChromosome() Chromosome {
	subjects := o.subjectIDs()
	faculty := o.facultyIDs()
	rooms := o.roomIDs()
	cohorts := o.cohortIDs()

	count := len(subjects) * 3
	genes := make([]Gene, 0, count)
	for i := 0; i < count; i++ {
		subjectID := o.pick(subjects)
		genes = append(genes, Gene{
			SubjectID:        subjectID,
			FacultyID:        o.pick(faculty),
			RoomID:           o.pick(rooms),
			CohortID:         o.pick(cohorts),
			RequiredRoomType: o.requiredRoomTypeFor(subjectID),
			Day:              o.rng.Intn(o.cfg.Days),
			Period:           o.rng.Intn(o.cfg.PeriodsPerDay),
		})
	}
	return Chromosome{Genes: genes}
}

// requiredRoomTypeFor looks up the room type any requirement for subjectID
// demands, defaulting to LECTURE when the subject has no requirement on
// record (diversity-seed genes only; the resolver repairs any mismatch).
func (o *Optimizer) requiredRoomTypeFor(subjectID string) models.RoomType {
	for _, req := range o.cat.Requirements {
		if req.SubjectID == subjectID {
			return req.RequiredRoomType
		}
	}
	return models.RoomLecture
}

func (o *Optimizer) pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[o.rng.Intn(len(values))]
}

func (o *Optimizer) subjectIDs() []string {
	out := make([]string, 0, len(o.cat.Subjects))
	for id := range o.cat.Subjects {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (o *Optimizer) facultyIDs() []string {
	out := make([]string, 0, len(o.cat.Faculty))
	for id := range o.cat.Faculty {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (o *Optimizer) roomIDs() []string {
	out := make([]string, 0, len(o.cat.Rooms))
	for _, r := range o.cat.Rooms {
		out = append(out, r.ID)
	}
	sort.Strings(out)
	return out
}

func (o *Optimizer) cohortIDs() []string {
	out := make([]string, 0, len(o.cat.Cohorts))
	for id := range o.cat.Cohorts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// nextGeneration sorts by fitness, keeps the elite fraction, and fills the
// rest via tournament selection, crossover, and mutation.
func (o *Optimizer) nextGeneration(population []Chromosome, params config.LevelParams) []Chromosome {
	sort.Slice(population, func(i, j int) bool { return population[i].FitnessScore > population[j].FitnessScore })

	eliteCount := int(math.Ceil(float64(params.PopulationSize) * o.cfg.ElitismFraction))
	if eliteCount > len(population) {
		eliteCount = len(population)
	}

	next := make([]Chromosome, 0, params.PopulationSize)
	for i := 0; i < eliteCount; i++ {
		next = append(next, population[i].Clone())
	}

	tournamentSize := o.cfg.TournamentSize
	if tournamentSize <= 0 {
		tournamentSize = 5
	}

	for len(next) < params.PopulationSize {
		parent1 := o.tournamentSelect(population, tournamentSize)
		parent2 := o.tournamentSelect(population, tournamentSize)

		var child1, child2 Chromosome
		if o.rng.Float64() < o.cfg.CrossoverRate {
			child1, child2 = o.crossover(parent1, parent2)
		} else {
			child1, child2 = parent1.Clone(), parent2.Clone()
		}

		o.mutate(&child1, params.MutationRate)
		o.mutate(&child2, params.MutationRate)

		next = append(next, child1, child2)
	}

	return next[:params.PopulationSize]
}

func (o *Optimizer) tournamentSelect(population []Chromosome, size int) Chromosome {
	if size > len(population) {
		size = len(population)
	}
	indices := o.rng.Perm(len(population))[:size]

	best := population[indices[0]]
	for _, idx := range indices[1:] {
		if population[idx].FitnessScore > best.FitnessScore {
			best = population[idx]
		}
	}
	return best
}

// crossover implements single-point crossover over gene slices, per
// spec §4.3.
func (o *Optimizer) crossover(p1, p2 Chromosome) (Chromosome, Chromosome) {
	if len(p1.Genes) == 0 || len(p2.Genes) == 0 {
		return p1.Clone(), p2.Clone()
	}

	minLen := len(p1.Genes)
	if len(p2.Genes) < minLen {
		minLen = len(p2.Genes)
	}
	if minLen < 2 {
		return p1.Clone(), p2.Clone()
	}

	k := 1 + o.rng.Intn(minLen-1)

	child1 := Chromosome{Genes: append(append([]Gene(nil), p1.Genes[:k]...), p2.Genes[k:]...)}
	child2 := Chromosome{Genes: append(append([]Gene(nil), p2.Genes[:k]...), p1.Genes[k:]...)}
	return child1, child2
}

// mutate perturbs each gene independently at rate, replacing one of
// {day, period, room_id} with a uniformly drawn admissible value.
func (o *Optimizer) mutate(c *Chromosome, rate float64) {
	if len(c.Genes) == 0 {
		return
	}
	rooms := o.roomIDs()

	for i := range c.Genes {
		if o.rng.Float64() >= rate {
			continue
		}
		switch o.rng.Intn(3) {
		case 0:
			c.Genes[i].Day = o.rng.Intn(o.cfg.Days)
		case 1:
			c.Genes[i].Period = o.rng.Intn(o.cfg.PeriodsPerDay)
		case 2:
			if len(rooms) > 0 {
				c.Genes[i].RoomID = rooms[o.rng.Intn(len(rooms))]
			}
		}
	}
}

// ChromosomeToSchedule converts the best chromosome back into a Schedule,
// merging consecutive same-subject/faculty/room/cohort genes into a single
// multi-period Assignment (the inverse of scheduleToChromosome).
func ChromosomeToSchedule(c Chromosome) models.Schedule {
	type key struct {
		subject, faculty, room, cohort string
		roomType                       models.RoomType
		day                            int
	}
	groups := map[key][]int{}
	for i, g := range c.Genes {
		k := key{g.SubjectID, g.FacultyID, g.RoomID, g.CohortID, g.RequiredRoomType, g.Day}
		groups[k] = append(groups[k], i)
	}

	var assignments []models.Assignment
	for k, idxs := range groups {
		periods := make([]int, len(idxs))
		for i, idx := range idxs {
			periods[i] = c.Genes[idx].Period
		}
		sort.Ints(periods)

		start := periods[0]
		prev := periods[0]
		for i := 1; i <= len(periods); i++ {
			if i < len(periods) && periods[i] == prev+1 {
				prev = periods[i]
				continue
			}
			assignments = append(assignments, models.Assignment{
				SubjectID:        k.subject,
				FacultyID:        k.faculty,
				RoomID:           k.room,
				CohortID:         k.cohort,
				RequiredRoomType: k.roomType,
				Day:              k.day,
				StartPeriod:      start,
				Duration:         prev - start + 1,
			})
			if i < len(periods) {
				start = periods[i]
				prev = periods[i]
			}
		}
	}

	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartPeriod != b.StartPeriod {
			return a.StartPeriod < b.StartPeriod
		}
		return fmt.Sprintf("%s%s", a.SubjectID, a.CohortID) < fmt.Sprintf("%s%s", b.SubjectID, b.CohortID)
	})

	return models.Schedule{
		Assignments:       assignments,
		FitnessScore:      c.FitnessScore,
		UtilizationRate:   c.Utilization,
		MovementReduction: c.Green,
		FatiguePrevention: c.Fatigue,
	}
}
