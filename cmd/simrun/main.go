package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/milk9111/stealth/sim"
)

func main() {
	seed := flag.Int64("seed", 1, "random seed")
	size := flag.Int("size", 0, "grid size in cells (0 uses the prefab)")
	ticks := flag.Int("ticks", 3600, "ticks to run")
	dt := flag.Float64("dt", 1.0/60, "seconds per tick")
	showMaze := flag.Bool("maze", false, "print the maze before running")
	flag.Parse()

	cfg, err := sim.LoadConfig()
	if err != nil {
		log.Fatalf("simrun: %v", err)
	}
	if *size > 0 {
		cfg.GridSize = *size
	}

	w, err := sim.New(cfg, sim.WithSeed(*seed), sim.WithDebug(true))
	if err != nil {
		log.Fatalf("simrun: %v", err)
	}
	if *showMaze {
		fmt.Print(w.Grid().String())
	}

	for w.Tick() < *ticks && !w.Done() {
		w.Step(*dt)
	}

	log.Printf("simrun: stopped at tick %d (%.2fs)", w.Tick(), w.Elapsed())
	for _, a := range w.Snapshot().Agents {
		log.Printf("simrun: agent %s %s at %v recognized=%t", a.ID, a.State, a.Cell, a.Recognized)
	}
}
