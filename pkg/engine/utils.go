package engine

import (
	"github.com/liamvdvyver/chest/pkg/common"
)

const (
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*common.MaxHeight
	valueLoss     = -valueWin
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func newUciScore(v int) common.UciScore {
	if v >= valueWin {
		return common.UciScore{Mate: (valueMate - v + 1) / 2}
	} else if v <= valueLoss {
		return common.UciScore{Mate: (-valueMate - v) / 2}
	} else {
		return common.UciScore{Centipawns: v}
	}
}
