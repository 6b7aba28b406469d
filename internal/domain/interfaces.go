package domain

import "context"

// TreeLister resolves a repository into its flat list of file entries
type TreeLister interface {
	// ListTree lists the blob entries of the repository tree at its ref
	ListTree(ctx context.Context, repo Repository) ([]TreeEntry, error)
}

// Picker presents candidate items to the user and returns the chosen subset.
//
// The contract has three outcomes: the chosen items (possibly empty) with a
// nil error; ErrPickerInterrupted when the selection was cancelled; any other
// error for an abnormal end of the selection. Implementations may shell out
// to an external program or run in-process, as long as input order is
// preserved in what they display.
type Picker interface {
	Select(ctx context.Context, items []string) ([]string, error)
}
