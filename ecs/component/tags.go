package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponentKind[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponentKind[EnemyTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponentKind[ObstacleTag]()
