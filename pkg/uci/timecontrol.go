package uci

import (
	"time"

	"github.com/liamvdvyver/chest/pkg/common"
)

const defaultMovesToGo = 40

// thinkTime converts the clock fields of a go command into one
// wall-clock budget for the search. Zero means unbounded: the search
// runs to the depth cap or until stopped. The result is never negative
// and never exceeds the mover's remaining time plus one increment.
func thinkTime(limits common.LimitsType, whiteMove bool, overhead time.Duration) time.Duration {
	if limits.MoveTime > 0 {
		return time.Duration(limits.MoveTime) * time.Millisecond
	}
	if limits.Infinite {
		return 0
	}
	var main, inc time.Duration
	if whiteMove {
		main = time.Duration(limits.WhiteTime) * time.Millisecond
		inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
	} else {
		main = time.Duration(limits.BlackTime) * time.Millisecond
		inc = time.Duration(limits.BlackIncrement) * time.Millisecond
	}
	if main == 0 && inc == 0 {
		return 0
	}
	var movesToGo = defaultMovesToGo
	if 0 < limits.MovesToGo && limits.MovesToGo < defaultMovesToGo {
		movesToGo = limits.MovesToGo
	}
	// A floor of one millisecond keeps a clamped budget from reading
	// as unbounded.
	var budget = main/time.Duration(movesToGo) + inc - overhead
	return limitDuration(budget, time.Millisecond, main+inc)
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
