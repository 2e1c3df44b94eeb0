// Package watchlist owns the user's saved movies.
//
// A [Store] holds the ordered, id-unique collection in memory and writes every mutation through to a
// [DurableStore], which keeps one JSON record under a fixed key of a [Storage] medium. A [View] derives
// the display order for a [SortCriterion] and recomputes whenever the store or the criterion changes.
// [RemovalTransition] carries the short-lived "removing" flag the UI uses as a visual affordance.
//
// All mutation goes through [Store.Toggle]; [Store.Add] and [Store.Remove] are guarded wrappers over it.
package watchlist
