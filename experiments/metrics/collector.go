package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth        int
	Exploration  float64
	Duration     time.Duration
	Nodes        int
	Cutoffs      int
	TableHits    int
	TableSize    int
	ImmediateWin bool // Move found without search
	Explored     bool // Move picked at random
}

type MoveMetric struct {
	Step   int
	Player int // Player index
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // Player index
	Winner         string // Player name, empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	WallsPlaced    int
}

type Collector interface {
	Start(depth int, exploration float64)
	AddNode()
	AddCutoff()
	AddTableHit()
	SetImmediateWin()
	SetExplored()
	SetTableSize(size int)
	Complete() SearchMetric
}

type collector struct {
	depth        int
	exploration  float64
	startTime    time.Time
	nodes        atomic.Int64
	cutoffs      atomic.Int64
	tableHits    atomic.Int64
	tableSize    atomic.Int64
	immediateWin atomic.Bool
	explored     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new move search.
func (m *collector) Start(depth int, exploration float64) {
	m.startTime = time.Now()
	m.depth = depth
	m.exploration = exploration
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.tableHits.Store(0)
	m.tableSize.Store(0)
	m.immediateWin.Store(false)
	m.explored.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) SetImmediateWin() {
	m.immediateWin.Store(true)
}

func (m *collector) SetExplored() {
	m.explored.Store(true)
}

func (m *collector) SetTableSize(size int) {
	m.tableSize.Store(int64(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:        m.depth,
		Exploration:  m.exploration,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		TableHits:    int(m.tableHits.Load()),
		TableSize:    int(m.tableSize.Load()),
		ImmediateWin: m.immediateWin.Load(),
		Explored:     m.explored.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, exploration float64) {}
func (m *dummyCollector) AddNode()                              {}
func (m *dummyCollector) AddCutoff()                            {}
func (m *dummyCollector) AddTableHit()                          {}
func (m *dummyCollector) SetImmediateWin()                      {}
func (m *dummyCollector) SetExplored()                          {}
func (m *dummyCollector) SetTableSize(size int)                 {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
