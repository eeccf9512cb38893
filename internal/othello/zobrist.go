package othello

type zobristTable struct {
	cells [Size * Size][2]uint64
	side  uint64
}

var zobrist = newZobristTable(0x9e3779b97f4a7c15)

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	table := &zobristTable{}
	for i := range table.cells {
		table.cells[i][0] = rng.next()
		table.cells[i][1] = rng.next()
	}
	table.side = rng.next()
	return table
}

// Hash returns a zobrist hash over the cells and the side to move.
func (b Board) Hash() uint64 {
	var hash uint64
	for i, cell := range b.cells {
		switch cell {
		case CellBlack:
			hash ^= zobrist.cells[i][0]
		case CellWhite:
			hash ^= zobrist.cells[i][1]
		}
	}
	if b.toMove == PlayerWhite {
		hash ^= zobrist.side
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
