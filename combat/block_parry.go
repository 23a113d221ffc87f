package combat

// Stance is the top-level state of a BlockParryState.
type Stance int

const (
	StanceIdle Stance = iota
	StanceBlocking
	StanceParrying
)

func (s Stance) String() string {
	switch s {
	case StanceBlocking:
		return "blocking"
	case StanceParrying:
		return "parrying"
	default:
		return "idle"
	}
}

// BlockParryState is the defender's stance machine. The parry window is a
// time-limited sub-state of blocking, opened by StartBlock and checked by the
// attacker at the moment its hit lands.
type BlockParryState struct {
	ParryWindowDuration float64
	BlockReduction      float64

	blocking    bool
	parrying    bool
	windowOpen  bool
	windowTimer float64
}

func NewBlockParryState(parryWindow, blockReduction float64) *BlockParryState {
	return &BlockParryState{ParryWindowDuration: parryWindow, BlockReduction: blockReduction}
}

// StartBlock enters blocking with a fresh parry window. No-op while blocking.
func (b *BlockParryState) StartBlock() {
	if b == nil || b.blocking {
		return
	}
	b.blocking = true
	b.parrying = false
	b.windowOpen = true
	b.windowTimer = 0
}

// EndBlock returns to idle unconditionally.
func (b *BlockParryState) EndBlock() {
	if b == nil {
		return
	}
	b.blocking = false
	b.parrying = false
	b.windowOpen = false
	b.windowTimer = 0
}

func (b *BlockParryState) Tick(dt float64) {
	if b == nil || !b.blocking || !b.windowOpen {
		return
	}
	b.windowTimer += dt
	if b.windowTimer > b.ParryWindowDuration {
		b.windowOpen = false
	}
}

// CheckParry succeeds only while blocking inside an open window, and moves the
// stance to parrying. The window closes on success.
func (b *BlockParryState) CheckParry() bool {
	if b == nil {
		return false
	}
	if b.blocking && b.windowOpen && b.windowTimer < b.ParryWindowDuration {
		b.parrying = true
		b.windowOpen = false
		return true
	}
	return false
}

// OnParryEnd is called when the parry reaction finishes. A held block gets a
// fresh window, otherwise the stance goes idle.
func (b *BlockParryState) OnParryEnd() {
	if b == nil {
		return
	}
	b.parrying = false
	if b.blocking {
		b.windowOpen = true
		b.windowTimer = 0
		return
	}
	b.windowOpen = false
	b.windowTimer = 0
}

// DamageMultiplier is 0 while parrying, BlockReduction while blocking and 1
// otherwise.
func (b *BlockParryState) DamageMultiplier() float64 {
	if b == nil {
		return 1
	}
	switch {
	case b.parrying:
		return 0
	case b.blocking:
		return b.BlockReduction
	default:
		return 1
	}
}

func (b *BlockParryState) State() Stance {
	switch {
	case b == nil:
		return StanceIdle
	case b.parrying:
		return StanceParrying
	case b.blocking:
		return StanceBlocking
	default:
		return StanceIdle
	}
}

func (b *BlockParryState) IsBlocking() bool { return b != nil && b.blocking }
func (b *BlockParryState) IsParrying() bool { return b != nil && b.parrying }
func (b *BlockParryState) WindowOpen() bool { return b != nil && b.windowOpen }

// WindowProgress is 0..1 through the parry window while blocking.
func (b *BlockParryState) WindowProgress() float64 {
	if b == nil || !b.blocking || b.ParryWindowDuration <= 0 {
		return 0
	}
	p := b.windowTimer / b.ParryWindowDuration
	if p > 1 {
		return 1
	}
	return p
}
