package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

var ErrUnknownAttack = errors.New("boss script: unknown attack")

// AttackQuery is what the attack selector sees.
type AttackQuery struct {
	Side       common.Facing
	LimbIntact bool
	InRange    bool
	Phase      int
}

// BossScript is a compiled attack selector. The script reads side,
// limb_intact, in_range and phase and assigns attack.
type BossScript struct {
	Path     string
	compiled *tengo.Compiled
}

// LoadBossScript compiles the named script. A compile error is returned to
// the caller so setup can fail.
func LoadBossScript(path string) (*BossScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("boss script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("side", "")
	_ = script.Add("limb_intact", false)
	_ = script.Add("in_range", false)
	_ = script.Add("phase", 0)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("boss script %s: %w", path, err)
	}
	return &BossScript{Path: path, compiled: compiled}, nil
}

// Select runs the script once.
func (s *BossScript) Select(q AttackQuery) (component.AttackKind, error) {
	if s == nil || s.compiled == nil {
		return "", ErrUnknownAttack
	}
	inputs := []struct {
		name  string
		value any
	}{
		{"side", q.Side.String()},
		{"limb_intact", q.LimbIntact},
		{"in_range", q.InRange},
		{"phase", q.Phase},
	}
	for _, in := range inputs {
		if err := s.compiled.Set(in.name, in.value); err != nil {
			return "", fmt.Errorf("boss script %s: set %s: %w", s.Path, in.name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return "", fmt.Errorf("boss script %s: %w", s.Path, err)
	}

	kind := component.AttackKind(s.compiled.Get("attack").String())
	switch kind {
	case component.AttackSlash, component.AttackRam, component.AttackChase:
		return kind, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownAttack, kind)
	}
}

// builtinAttack is the selection used without a script or when it fails.
func builtinAttack(q AttackQuery) component.AttackKind {
	switch {
	case !q.InRange:
		return component.AttackChase
	case q.Phase == 1 && q.LimbIntact:
		return component.AttackSlash
	default:
		return component.AttackRam
	}
}
