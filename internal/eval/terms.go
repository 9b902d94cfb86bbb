package eval

// Hand-placed evaluation constants. Demolito tunes its equivalents with an
// external Texel-tuning harness (tune.c); that harness is out of scope here,
// so these are fixed values chosen to be directionally sensible rather than
// fitted.
const (
	tempoBonus = 10

	bishopPairBonus = 25

	rookOpenFileBonus     = 15
	rookSemiOpenFileBonus = 8

	kingOpenFilePenalty = 30

	isolatedPawnPenalty = 12
	doubledPawnPenalty  = 10
	passedPawnBonus     = 18
)
