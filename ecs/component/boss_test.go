package component

import "testing"

func TestBossStateIDString(t *testing.T) {
	cases := []struct {
		state BossStateID
		want  string
	}{
		{BossChase, "chase"},
		{BossAttacking, "attack"},
		{BossStun, "stun"},
		{BossMoveToStart, "move_to_start"},
		{BossMoveToEnd, "move_to_end"},
		{BossIdle, "idle"},
		{BossDead, "dead"},
		{BossStateID(99), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Fatalf("BossStateID(%d).String() = %q, want %q", int(tc.state), got, tc.want)
		}
	}
}

func TestBossAttackTotal(t *testing.T) {
	a := BossAttack{Windup: 0.5, Active: 0.2, Recover: 0.3}
	if got := a.Total(); got != 1.0 {
		t.Fatalf("Total() = %v, want 1", got)
	}
}
