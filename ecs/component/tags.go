package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BossTag struct{}

var BossTagComponent = NewComponent[BossTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()
