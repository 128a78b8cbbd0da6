package spell

// Distance returns the Damerau-Levenshtein edit distance between a and b:
// the minimum number of single-rune insertions, deletions, substitutions,
// and transpositions needed to turn one string into the other.
//
// The transposition term uses the last-occurrence table form rather than
// the restricted adjacent-swap shortcut. Only the former is a true metric;
// Tree pruning depends on the triangle inequality holding.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	la := len(ra)
	lb := len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// The table carries one extra sentinel row and column ahead of the
	// usual base cases, so transposition lookups can never underflow.
	inf := la + lb
	dp := make([][]int, la+2)
	for i := range dp {
		dp[i] = make([]int, lb+2)
	}
	dp[0][0] = inf
	for i := 0; i <= la; i++ {
		dp[i+1][0] = inf
		dp[i+1][1] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j+1] = inf
		dp[1][j+1] = j
	}

	// lastRow[r] is the most recent row where rune r occurred in a.
	lastRow := make(map[rune]int, la)
	for i := 1; i <= la; i++ {
		lastCol := 0
		for j := 1; j <= lb; j++ {
			row := lastRow[rb[j-1]]
			col := lastCol
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
				lastCol = j
			}
			dp[i+1][j+1] = min(
				dp[i][j]+cost,
				dp[i+1][j]+1,
				dp[i][j+1]+1,
				dp[row][col]+(i-row-1)+1+(j-col-1),
			)
		}
		lastRow[ra[i-1]] = i
	}
	return dp[la+1][lb+1]
}
