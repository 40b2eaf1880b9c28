// wellctl runs the calculators headlessly against a project snapshot file,
// for what-if checks without the server.
package main

import (
	pumpsched "Wellcore/internal/calc/pumpsched"
	rheology "Wellcore/internal/calc/rheology"
	swabsurge "Wellcore/internal/calc/swabsurge"
	volumes "Wellcore/internal/calc/volumes"
	repo "Wellcore/internal/repo"
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"
)

type output struct {
	Volumes volumes.Result    `json:"volumes"`
	Swab    swabsurge.Result  `json:"swab"`
	Program []pumpsched.Stage `json:"program,omitempty"`
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	snapshotPath := flag.String("project", "", "path to a project snapshot JSON file")
	bitDepth := flag.Float64("bit-depth", 0, "bit depth in meters (default: deepest string section)")
	hoistSpeed := flag.Float64("speed", 0.5, "hoisting speed in m/s (negative for running in)")
	step := flag.Float64("step", 50, "profile step in meters")
	rate := flag.Float64("rate", 0, "pump rate in m3/min; when set, a displacement program is generated")
	flag.Parse()

	if *snapshotPath == "" {
		logger.Fatal("missing -project flag")
	}
	raw, err := os.ReadFile(*snapshotPath)
	if err != nil {
		logger.Fatal("reading snapshot", zap.Error(err))
	}
	var p repo.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.Fatal("parsing snapshot", zap.Error(err))
	}

	depth := *bitDepth
	if depth <= 0 {
		for _, s := range p.Strings {
			if b := s.BottomDepthM(); b > depth {
				depth = b
			}
		}
	}

	vols, err := volumes.Calculate(volumes.Input{Strings: p.Strings, Annulus: p.Annulus})
	if err != nil {
		logger.Fatal("volume summary", zap.Error(err))
	}

	mud := rheology.ActiveMud(p.Muds)
	swab, err := swabsurge.Calculate(swabsurge.Input{
		BitDepthM:    depth,
		StepM:        *step,
		HoistSpeedMS: *hoistSpeed,
		Strings:      p.Strings,
		Annulus:      p.Annulus,
		Layers:       p.Layers,
		Mud:          mud,
		Window:       p.Window,
	})
	if err != nil {
		logger.Fatal("swab estimate", zap.Error(err))
	}

	out := output{Volumes: vols, Swab: swab}
	if *rate > 0 {
		density := 1000.0
		if mud != nil {
			density = mud.DensityKgM3
		}
		out.Program = pumpsched.GenerateProgram(p.Strings, p.Annulus, density, *rate)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
}
