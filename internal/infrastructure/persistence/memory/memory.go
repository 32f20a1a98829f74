// Package memory implements the in-process entity stores for the Zenith hub.
//
// All live state belongs to these stores; the snapshot layer only mirrors
// them. Every store guards its collection with a sync.RWMutex, preserves
// insertion order for listing, and invokes a single onChange hook after each
// successful mutation. The hook is the persistence seam: it fires after the
// in-memory change has been applied and its failure never rolls anything
// back.
package memory

// ChangeHook is invoked after every successful mutation of a store,
// scoped to that store alone. Loading a snapshot via ReplaceAll does not
// fire the hook - a freshly loaded collection has nothing new to persist.
type ChangeHook func()

func fire(hook ChangeHook) {
	if hook != nil {
		hook()
	}
}
