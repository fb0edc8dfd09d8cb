package utils

import "golang.org/x/exp/constraints"


//=========================================== Numeric Utils


/*
	Min/Max:
		small generic helpers over anything ordered, used throughout the log and
		replication packages for index arithmetic (batch-size capping, prevLogIndex
		clamping) instead of duplicating the two-line comparison at every call site
*/

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}

	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}

	return b
}
