package review

import "sheetmatch/internal/textutil"

// IsDuplicate reports whether filename's base identity has already been seen.
// Callers register the identity with registerIdentity when this returns false,
// before the next image is considered.
func IsDuplicate(filename string, seen map[string]struct{}) bool {
	_, ok := seen[textutil.BaseIdentity(filename)]
	return ok
}

func registerIdentity(filename string, seen map[string]struct{}) {
	seen[textutil.BaseIdentity(filename)] = struct{}{}
}
