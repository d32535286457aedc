package unique

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/timer"
)

var (
	ErrWorkerID   = errors.New("worker id exceeds node bits")
	ErrBitsLayout = errors.New("total bits must be greater than node + step bits")
)

// SnowflakeNode issues time-ordered 63-bit ids: timestamp, worker, sequence.
type SnowflakeNode struct {
	mu        sync.Mutex
	timestamp int64
	node      int64
	step      int64

	epoch     int64
	totalBits uint8
	stepMax   int64
	timeShift uint8
	nodeShift uint8
	limitMask int64

	clock timer.Timer
}

func NewSnowflakeNode(cfg settings.SnowflakeNode, clock timer.Timer) (*SnowflakeNode, error) {
	if clock == nil {
		clock = timer.System()
	}

	nodeMax := int64(-1 ^ (-1 << cfg.Config.Node))
	stepMax := int64(-1 ^ (-1 << cfg.Config.Step))

	if cfg.WorkerID < 0 || cfg.WorkerID > nodeMax {
		return nil, errors.Wrapf(ErrWorkerID, "worker %d, max %d", cfg.WorkerID, nodeMax)
	}

	totalBits := cfg.Config.TotalBits
	if totalBits == 0 {
		totalBits = 63
	}
	if totalBits <= cfg.Config.Node+cfg.Config.Step {
		return nil, ErrBitsLayout
	}

	limitMask := int64(1)<<totalBits - 1
	if totalBits >= 63 {
		limitMask = int64(^uint64(0) >> 1)
	}

	return &SnowflakeNode{
		node:      cfg.WorkerID,
		epoch:     cfg.Config.Epoch,
		totalBits: totalBits,
		stepMax:   stepMax,
		timeShift: cfg.Config.Node + cfg.Config.Step,
		nodeShift: cfg.Config.Step,
		limitMask: limitMask,
		clock:     clock,
	}, nil
}

// Generate returns the next id. Ids from one node are strictly increasing
// even if the clock steps backwards.
func (n *SnowflakeNode) Generate() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.tick()
	if now < n.timestamp {
		now = n.timestamp
	}

	if now == n.timestamp {
		n.step = (n.step + 1) & n.stepMax
		if n.step == 0 {
			// sequence exhausted for this tick
			for now <= n.timestamp {
				now = n.tick()
			}
		}
	} else {
		n.step = 0
	}

	n.timestamp = now

	id := ((now - n.epoch) << n.timeShift) | (n.node << n.nodeShift) | n.step
	return id & n.limitMask
}

// tick is seconds when fewer than 50 bits are available, milliseconds otherwise.
func (n *SnowflakeNode) tick() int64 {
	if n.totalBits < 50 {
		return n.clock.Now().Unix()
	}
	return n.clock.Now().UnixMilli()
}
