package docxdiff

// EditOp classifies one step of an edit script.
type EditOp int

const (
	OpEqual EditOp = iota
	OpDelete
	OpInsert
)

func (op EditOp) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is one operation of an edit script. The equal/delete subsequence of
// a script reconstructs the base token sequence; the equal/insert
// subsequence reconstructs the revised one.
type Edit struct {
	Op    EditOp
	Token string
}

// DiffTokens computes a minimal edit script between two token sequences by
// exact longest-common-subsequence alignment.
//
// dp[i][j] holds the LCS length of a[i:] and b[j:], filled bottom-up in
// O(len(a)*len(b)) time and space. Backtracking from (0,0) emits equal on a
// match; on a tie between skipping a token of a and skipping a token of b
// it prefers delete over insert, which keeps replaces ordered as "delete
// old, then insert new". Acceptable quadratic cost relies on callers
// diffing per paragraph under the token cap, never whole documents.
func DiffTokens(a, b []string) []Edit {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	script := make([]Edit, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			script = append(script, Edit{Op: OpEqual, Token: a[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			script = append(script, Edit{Op: OpDelete, Token: a[i]})
			i++
		default:
			script = append(script, Edit{Op: OpInsert, Token: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		script = append(script, Edit{Op: OpDelete, Token: a[i]})
	}
	for ; j < len(b); j++ {
		script = append(script, Edit{Op: OpInsert, Token: b[j]})
	}
	return script
}
