package combat

import (
	"testing"

	"github.com/milk9111/bossfight/common"
)

type counterSpy struct{ n int }

func (c *counterSpy) OnCountered() { c.n++ }

func TestResolverTiers(t *testing.T) {
	cases := []struct {
		name       string
		stance     func() *BlockParryState
		wantTier   Tier
		wantDamage float64
		wantHP     float64
		wantCount  int
	}{
		{
			name:       "unguarded",
			stance:     func() *BlockParryState { return NewBlockParryState(0.3, 0.5) },
			wantTier:   TierHit,
			wantDamage: 20,
			wantHP:     80,
		},
		{
			name: "blocked",
			stance: func() *BlockParryState {
				b := NewBlockParryState(0.3, 0.5)
				b.StartBlock()
				b.Tick(0.5)
				return b
			},
			wantTier:   TierBlocked,
			wantDamage: 10,
			wantHP:     90,
		},
		{
			name: "parried",
			stance: func() *BlockParryState {
				b := NewBlockParryState(0.3, 0.5)
				b.StartBlock()
				b.Tick(0.1)
				return b
			},
			wantTier:  TierParried,
			wantHP:    100,
			wantCount: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var events []Event
			em := &Emitter{}
			em.Subscribe(func(evt Event) { events = append(events, evt) })
			r := NewResolver(em)

			hp := NewHealthPool(100, 1)
			spy := &counterSpy{}
			res := r.Resolve(Hit{
				AttackerID:      1,
				TargetID:        2,
				Hitbox:          "slash_left",
				Activation:      1,
				Damage:          20,
				AttackerFaction: FactionBoss,
				TargetFaction:   FactionPlayer,
				Attacker:        Point(common.V(0, 0)),
				Defender:        Point(common.V(2, 0)),
				Stance:          c.stance(),
				Target:          hp,
				Counter:         spy,
			})
			if res.Tier != c.wantTier {
				t.Fatalf("tier = %v, want %v", res.Tier, c.wantTier)
			}
			if res.Damage != c.wantDamage || hp.Current != c.wantHP {
				t.Fatalf("damage=%v hp=%v, want %v/%v", res.Damage, hp.Current, c.wantDamage, c.wantHP)
			}
			if spy.n != c.wantCount {
				t.Fatalf("countered %d times, want %d", spy.n, c.wantCount)
			}
			if c.wantTier != TierParried && res.Knockback != common.Right {
				t.Fatalf("knockback = %v, want %v", res.Knockback, common.Right)
			}
			if len(events) == 0 {
				t.Fatal("expected events")
			}
		})
	}
}

func TestResolverDedupeAndFaction(t *testing.T) {
	r := NewResolver(nil)
	hp := NewHealthPool(100, 0)
	hit := Hit{
		AttackerID:      1,
		TargetID:        2,
		Hitbox:          "attack",
		Activation:      7,
		Damage:          10,
		AttackerFaction: FactionPlayer,
		TargetFaction:   FactionBoss,
		Target:          hp,
	}

	if res := r.Resolve(hit); !res.Applied {
		t.Fatal("first overlap should apply")
	}
	if res := r.Resolve(hit); res.Tier != TierNone {
		t.Fatalf("same activation resolved twice: %v", res.Tier)
	}
	hit.Activation = 8
	if res := r.Resolve(hit); !res.Applied {
		t.Fatal("new activation should apply")
	}

	friendly := hit
	friendly.Activation = 9
	friendly.TargetFaction = FactionPlayer
	if res := r.Resolve(friendly); res.Tier != TierNone {
		t.Fatal("friendly fire should be ignored")
	}
	if hp.Current != 80 {
		t.Fatalf("hp = %v, want 80", hp.Current)
	}
}

func TestResolverRejectedWhenInvulnerable(t *testing.T) {
	r := NewResolver(nil)
	hp := NewHealthPool(100, 1)
	hp.StartInvulnerability(1)
	res := r.Resolve(Hit{AttackerID: 1, TargetID: 2, Hitbox: "ram", Damage: 10, Target: hp})
	if res.Tier != TierRejected || hp.Current != 100 {
		t.Fatalf("tier=%v hp=%v", res.Tier, hp.Current)
	}
}

func TestResolverAbsorbsHitDuringParryClip(t *testing.T) {
	var applied int
	em := &Emitter{}
	em.Subscribe(func(evt Event) {
		if evt.Type == EventDamageApplied {
			applied++
		}
	})
	r := NewResolver(em)

	stance := NewBlockParryState(0.3, 0.5)
	stance.StartBlock()
	stance.Tick(0.1)
	hp := NewHealthPool(100, 1)
	hit := Hit{
		AttackerID:      1,
		TargetID:        2,
		Hitbox:          "slash_left",
		Activation:      1,
		Damage:          20,
		AttackerFaction: FactionBoss,
		TargetFaction:   FactionPlayer,
		Stance:          stance,
		Target:          hp,
	}
	if res := r.Resolve(hit); res.Tier != TierParried {
		t.Fatalf("first hit tier = %v, want parried", res.Tier)
	}

	hit.Hitbox = "ram"
	hit.Activation = 2
	res := r.Resolve(hit)
	if res.Tier != TierBlocked || res.Applied || res.Damage != 0 {
		t.Fatalf("second hit = %+v, want an absorbed block", res)
	}
	if hp.Current != 100 || hp.IsInvulnerable() {
		t.Fatalf("hp=%v invulnerable=%v, want untouched pool", hp.Current, hp.IsInvulnerable())
	}
	if applied != 0 {
		t.Fatalf("damage_applied emitted %d times", applied)
	}
}
