/*
reconcile.go - Reversal reconciliation

PURPOSE:
  Removes matched debit/credit (reversed) entry pairs from a raw hours
  journal before any rule evaluation. Every report in this package runs over
  the reconciled set, never the raw upload.

ALGORITHM:
  Compute the set R of reversal entry nos (HoursWorked < 0 and AppliesTo
  set) and the set T of targeted entry nos; drop every entry whose EntryNo
  is in R ∪ T. A pure set-difference filter: O(n) with hash sets,
  order-preserving for survivors, idempotent on already-clean data.

CONSISTENCY GAPS:
  A reversal whose target entry no is absent still drops the reversal row
  itself; the missing target is reported as a ReversalGap, not an error.
  No resource-match check is performed on the target: any entry carrying
  the referenced entry no is removed.
*/
package journal

// ReversalGap records a reversal whose target was not present in the
// dataset. Non-fatal: the caller logs it and processing continues.
type ReversalGap struct {
	ReversalEntryNo int64
	TargetEntryNo   int64
}

// ReconcileResult is the outcome of a reconciliation pass.
type ReconcileResult struct {
	Survivors []TimeEntry
	Gaps      []ReversalGap
}

// Reconcile removes reversal rows and the rows they cancel. The input slice
// is not modified; survivors keep their input order.
func Reconcile(entries []TimeEntry) ReconcileResult {
	present := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		present[e.EntryNo] = struct{}{}
	}

	drop := make(map[int64]struct{})
	var gaps []ReversalGap
	for _, e := range entries {
		if !e.IsReversal() {
			continue
		}
		drop[e.EntryNo] = struct{}{}
		target := *e.AppliesTo
		drop[target] = struct{}{}
		if _, ok := present[target]; !ok {
			gaps = append(gaps, ReversalGap{
				ReversalEntryNo: e.EntryNo,
				TargetEntryNo:   target,
			})
		}
	}

	survivors := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		if _, gone := drop[e.EntryNo]; !gone {
			survivors = append(survivors, e)
		}
	}

	return ReconcileResult{Survivors: survivors, Gaps: gaps}
}
