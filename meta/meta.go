package meta

// MAX_MOVES is the number of moves after which a game is called a draw.
const MAX_MOVES = 200

// NUM_GAMES is the number of benchmark games per matchup.
const NUM_GAMES = 50

// PARALLEL_GAMES is the number of benchmark games played at once.
const PARALLEL_GAMES = 4
