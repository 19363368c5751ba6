package tectonics

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/plategraph/internal/entropy"
	"github.com/talgya/plategraph/internal/world"
)

// Plates 0 and 1 are always the polar caps.
const (
	northCapID = 0
	southCapID = 1
)

// Synthesize partitions the mesh into plates. It is deterministic for fixed
// inputs and keeps no state between calls.
func Synthesize(mesh *world.Mesh, crust *world.Crust, seed int64, cfg Config) (*PlateGraph, error) {
	l, cfg, rng, minSep, err := buildLayout(mesh, crust, seed, cfg)
	if err != nil {
		return nil, err
	}

	cellToPlate, err := l.sweep()
	if err != nil {
		return nil, err
	}

	plates := make([]Plate, len(l.plates))
	for id, spec := range l.plates {
		d := plateDrift(spec, cfg, rng)
		plates[id] = Plate{
			ID:        id,
			Role:      spec.role,
			Kind:      spec.kind,
			Pole:      spec.pole,
			SeedCell:  spec.seed,
			SeedX:     mesh.SiteX[spec.seed],
			SeedY:     mesh.SiteY[spec.seed],
			Weight:    spec.weight,
			VelocityX: d.vx,
			VelocityY: d.vy,
			Rotation:  d.rotation,
		}
	}

	return &PlateGraph{
		CellToPlate:   cellToPlate,
		Plates:        plates,
		MinSeparation: minSep,
	}, nil
}

// buildLayout validates the inputs and runs every stage before the sweep:
// classification, microplate budgeting, seeding, locking and weighting.
func buildLayout(mesh *world.Mesh, crust *world.Crust, seed int64, cfg Config) (*layout, Config, *entropy.Source, float64, error) {
	if mesh == nil || crust == nil {
		return nil, cfg, nil, 0, fmt.Errorf("%w: nil mesh or crust", ErrInvalidInput)
	}
	if err := mesh.Validate(); err != nil {
		return nil, cfg, nil, 0, fmt.Errorf("%w: mesh: %w", ErrInvalidInput, err)
	}
	if err := crust.Validate(mesh.CellCount); err != nil {
		return nil, cfg, nil, 0, fmt.Errorf("%w: crust: %w", ErrInvalidInput, err)
	}
	cfg, err := cfg.Normalize(mesh.CellCount)
	if err != nil {
		return nil, cfg, nil, 0, err
	}

	rng := entropy.NewSource(seed)
	age01 := crust.NormalizedAge()
	reg := classifyRegions(mesh, cfg.CapFraction, cfg.MicroplateBandFraction, cfg.PlateCount)

	micro, microMasks := microplateBudget(mesh, reg, cfg)
	tectonicCount := cfg.PlateCount - 2 - 2*micro

	if tectonicCount > 0 {
		free := countFree(reg.masks[maskTectonic], reg.lock) - 2*micro*cfg.MicroplateMinArea
		if free < tectonicCount {
			return nil, cfg, nil, 0, fmt.Errorf("%w: %d tectonic plates need more than the %d free cells outside the caps",
				ErrConfig, tectonicCount, max(free, 0))
		}
	}

	minSep := MinSeparation(mesh, cfg.PlateCount, cfg.SeparationScale)
	placer := newSeedPlacer(mesh, crust, age01, reg.lock, rng, cfg, minSep)

	l := &layout{
		mesh:  mesh,
		res:   resistanceField(crust, age01, cfg.AgeResistance),
		masks: reg.masks,
		lock:  reg.lock,
	}

	for _, pc := range []struct {
		pole Pole
		band []bool
		mask maskID
	}{
		{PoleNorth, reg.northBand, maskNorthCap},
		{PoleSouth, reg.southBand, maskSouthCap},
	} {
		s, err := placer.placeCap(pc.band, pc.pole)
		if err != nil {
			return nil, cfg, nil, 0, err
		}
		l.plates = append(l.plates, plateSpec{role: RolePolarCap, kind: KindMajor, pole: pc.pole, mask: pc.mask, seed: s})
	}

	for _, band := range []struct {
		pole  Pole
		mask  maskID
		label string
	}{
		{PoleNorth, maskNorthMicro, "seed.micro.north"},
		{PoleSouth, maskSouthMicro, "seed.micro.south"},
	} {
		for i := 0; i < micro; i++ {
			id := len(l.plates)
			s, err := placer.place(id, KindMinor, microMasks[band.pole], band.label)
			if err != nil {
				return nil, cfg, nil, 0, err
			}
			locked := lockRegion(mesh, reg.masks[band.mask], reg.lock, s, id, cfg.MicroplateMinArea)
			if locked < cfg.MicroplateMinArea {
				slog.Debug("microplate locked less than its minimum area",
					"plate", id, "pole", band.pole, "locked", locked, "target", cfg.MicroplateMinArea)
			}
			l.plates = append(l.plates, plateSpec{role: RolePolarMicroplate, kind: KindMinor, pole: band.pole, mask: band.mask, seed: s})
		}
	}

	majors := int(math.Round(float64(tectonicCount) * cfg.MajorShare))
	if tectonicCount > 0 && majors == 0 {
		majors = 1
	}
	for i := 0; i < tectonicCount; i++ {
		kind := KindMinor
		if i < majors {
			kind = KindMajor
		}
		id := len(l.plates)
		s, err := placer.place(id, kind, reg.masks[maskTectonic], "seed.tectonic")
		if err != nil {
			return nil, cfg, nil, 0, err
		}
		l.plates = append(l.plates, plateSpec{role: RoleTectonic, kind: kind, pole: PoleNone, mask: maskTectonic, seed: s})
	}

	for i := range l.plates {
		l.plates[i].weight = plateWeight(l.plates[i].kind, cfg.WeightBase, rng)
	}
	return l, cfg, rng, minSep, nil
}

// microplateBudget returns how many microplates each pole gets and, per pole,
// the microplate band reduced to components large enough to host one. The
// requested count shrinks silently to what the bands and plate count allow.
func microplateBudget(mesh *world.Mesh, reg *regions, cfg Config) (int, map[Pole][]bool) {
	if cfg.MicroplatesPerPole == 0 {
		return 0, nil
	}
	north, northCapacity := filterComponents(mesh, reg.masks[maskNorthMicro], cfg.MicroplateMinArea)
	south, southCapacity := filterComponents(mesh, reg.masks[maskSouthMicro], cfg.MicroplateMinArea)

	micro := min(cfg.MicroplatesPerPole, northCapacity, southCapacity, max(0, (cfg.PlateCount-3)/2))
	if micro < cfg.MicroplatesPerPole {
		slog.Debug("microplate count reduced",
			"requested", cfg.MicroplatesPerPole, "granted", micro,
			"north_capacity", northCapacity, "south_capacity", southCapacity)
	}
	return micro, map[Pole][]bool{PoleNorth: north, PoleSouth: south}
}
