package shatter

// Cell describes one slot in a level layout grid.
type Cell struct {
	Kind  ObstacleKind
	Empty bool
}

// Level represents a playable level layout.
type Level struct {
	ID     string
	Name   string
	Width  int    // Number of obstacle columns
	Height int    // Number of obstacle rows
	Cells  []Cell // Row-major grid of cells
}

// At returns the cell at the given row and column.
func (l *Level) At(row, col int) Cell {
	return l.Cells[row*l.Width+col]
}

// CountDestructible returns how many destructible obstacles the layout holds.
func (l *Level) CountDestructible() int {
	count := 0
	for _, c := range l.Cells {
		if !c.Empty && c.Kind != ObstacleIndestructible {
			count++
		}
	}
	return count
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'.' = empty
//	'#' = standard obstacle
//	'2' = reinforced (2 hits)
//	'3' = heavy (3 hits)
//	'X' = indestructible
//	'P' = power drop
//	'D' = detonator
//	'C' = cycling bonus
//	'R' = relocating
//	'U' = duplicator
//	'K' = catalyst
//	'?' = random destructible variant, resolved at load time
//
// Unknown characters parse as empty. '?' cells are left as Standard here
// and rerolled by the session when the level is instantiated, so the
// layout itself stays deterministic.
func ParseLevel(id, name string, lines []string) *Level {
	if len(lines) == 0 {
		return &Level{ID: id, Name: name}
	}

	maxWidth := 0
	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	level := &Level{
		ID:     id,
		Name:   name,
		Width:  maxWidth,
		Height: len(lines),
		Cells:  make([]Cell, len(lines)*maxWidth),
	}

	for row, line := range lines {
		for col := range maxWidth {
			var ch byte = '.'
			if col < len(line) {
				ch = line[col]
			}
			level.Cells[row*maxWidth+col] = parseCell(ch)
		}
	}

	return level
}

// parseCell maps a layout character to a cell.
func parseCell(ch byte) Cell {
	switch ch {
	case '#':
		return Cell{Kind: ObstacleStandard}
	case '2':
		return Cell{Kind: ObstacleReinforced}
	case '3':
		return Cell{Kind: ObstacleHeavy}
	case 'X', 'x':
		return Cell{Kind: ObstacleIndestructible}
	case 'P', 'p':
		return Cell{Kind: ObstaclePowerDrop}
	case 'D', 'd':
		return Cell{Kind: ObstacleDetonator}
	case 'C', 'c':
		return Cell{Kind: ObstacleCyclingBonus}
	case 'R', 'r':
		return Cell{Kind: ObstacleRelocating}
	case 'U', 'u':
		return Cell{Kind: ObstacleDuplicator}
	case 'K', 'k':
		return Cell{Kind: ObstacleCatalyst}
	case '?':
		// Marker for a random variant; the session rerolls these.
		return Cell{Kind: obstacleRandomMarker}
	default:
		return Cell{Empty: true}
	}
}

// obstacleRandomMarker flags a cell whose kind is rolled when the level
// is instantiated. It never appears on a live obstacle.
const obstacleRandomMarker ObstacleKind = -1

// BuiltinLevels returns all built-in levels.
func BuiltinLevels() []*Level {
	return []*Level{
		// Level 1: warm-up rows, one guaranteed drop
		ParseLevel("opening", "Opening Volley", []string{
			"####################",
			"####################",
			"#########PP#########",
			"####################",
		}),

		// Level 2: reinforced shell around soft center
		ParseLevel("shell", "Hard Shell", []string{
			"22222222222222222222",
			"2##################2",
			"2#######CC#########2",
			"2##################2",
			"22222222222222222222",
		}),

		// Level 3: detonator cross
		ParseLevel("crossfire", "Crossfire", []string{
			"....####D####.......",
			"....####D####.......",
			"DDDDDDDDDDDDDDDDDDDD",
			"....####D####.......",
			"....####D####.......",
		}),

		// Level 4: indestructible pillars with jumpy bricks between
		ParseLevel("pillars", "Pillars", []string{
			"X..R..X..R..X..R..X.",
			"X..#..X..#..X..#..X.",
			"X..R..X..R..X..R..X.",
			"X..#..X..#..X..#..X.",
		}),

		// Level 5: duplicator nest behind heavy wall
		ParseLevel("hydra", "Hydra Nest", []string{
			"33333333333333333333",
			"....................",
			"..UU....UU....UU....",
			"....................",
			"#########KK#########",
		}),

		// Level 6: mixed gauntlet
		ParseLevel("gauntlet", "Gauntlet", []string{
			"X2X2X2X2X2X2X2X2X2X2",
			"#.D.#.C.#.R.#.U.#.K.",
			"####################",
			"..P...P....P...P....",
			"33..33..33..33..33..",
		}),

		// Level 7: roulette, mostly random variants
		ParseLevel("roulette", "Roulette", []string{
			"????????????????????",
			"?..?..?..?..?..?..?.",
			"????????????????????",
			"?..?..?..?..?..?..?.",
			"????????????????????",
		}),

		// Level 8: catalyst vault
		ParseLevel("vault", "The Vault", []string{
			"XXXXXXXX....XXXXXXXX",
			"X222222X....X222222X",
			"X2KKKK2X.DD.X2KKKK2X",
			"X222222X....X222222X",
			"XXXXXXXX....XXXXXXXX",
		}),
	}
}

// GetLevelByID returns a copy of a built-in level by its ID.
func GetLevelByID(id string) (*Level, bool) {
	for _, level := range BuiltinLevels() {
		if level.ID == id {
			return level, true
		}
	}
	return nil, false
}

// GetLevel returns a built-in level by index (wraps around if index >= len).
func GetLevel(index int) *Level {
	levels := BuiltinLevels()
	if len(levels) == 0 {
		return ParseLevel("empty", "Empty", nil)
	}
	return levels[index%len(levels)]
}

// LevelCount returns the total number of built-in levels.
func LevelCount() int {
	return len(BuiltinLevels())
}
