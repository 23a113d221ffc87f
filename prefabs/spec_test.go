package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.Block.Reduction != 0.5 || player.Block.ParryWindow != 0.3 {
		t.Fatalf("unexpected block tuning %+v", player.Block)
	}
	if player.Costs.Dodge != 20 || player.Stamina.Max != 100 {
		t.Fatalf("unexpected stamina tuning %+v %+v", player.Costs, player.Stamina)
	}

	boss, err := LoadBossSpec()
	if err != nil {
		t.Fatalf("boss: %v", err)
	}
	if boss.Stagger.Max != 100 || boss.LimbBreakThreshold != 2 || boss.StunDuration != 3 {
		t.Fatalf("unexpected boss tuning %+v", boss)
	}

	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("arena: %v", err)
	}
	if len(arena.Lanes) != 3 {
		t.Fatalf("expected 3 dash lanes, got %d", len(arena.Lanes))
	}

	if _, err := LoadScript(boss.AttackScript); err != nil {
		t.Fatalf("attack script: %v", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, ArenaFile), []byte("bounds: {x: 0, y: 0, width: 4, height: 2}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatal(err)
	}
	if arena.Bounds.Width != 4 || len(arena.Lanes) != 0 {
		t.Fatalf("override not applied: %+v", arena)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *PlayerSpec)
	}{
		{"no_health", func(p *PlayerSpec) { p.Health = 0 }},
		{"reduction_above_one", func(p *PlayerSpec) { p.Block.Reduction = 1.5 }},
		{"inverted_hit_window", func(p *PlayerSpec) { p.Attack.HitEnd = p.Attack.HitStart - 0.1 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := LoadSpec[PlayerSpec](PlayerFile)
			if err != nil {
				t.Fatal(err)
			}
			c.mutate(&spec)
			if err := spec.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestTuningName(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"prefabs/boss.yaml", "boss.yaml", true},
		{"/tmp/x/scripts/boss_attack.tengo", "scripts/boss_attack.tengo", true},
		{"prefabs/notes.txt", "", false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			got, ok := TuningName(c.path)
			if got != c.want || ok != c.ok {
				t.Fatalf("TuningName(%q) = %q,%v", c.path, got, ok)
			}
		})
	}
}
