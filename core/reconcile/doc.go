// Package reconcile provides the engine that copies stock quantities from a
// Source inventory system into a Sink storefront.
//
// A run walks a fixed state machine:
//
//	Init -> Connected -> Fetching -> Pushing -> Done
//	Init -> Failed              (Source connection failed)
//	Fetching -> Done            (nothing fetched; still a success)
//
// # Failure isolation
//
// Only a Source connection failure ends a run early. Every per-item fault is
// classified by the component that produced it (FetchOutcome, UpdateOutcome)
// and counted in the RunSummary; one bad item never aborts the batch.
//
// Items missed during the fetch phase are counted as Skipped, not as errors.
// Every push outcome other than UpdateSuccess, including a Sink 404, counts
// towards TotalErrors.
//
// # Ordering
//
// There is no concurrency inside a run. Items are fetched and then pushed in
// the mapping's insertion order, one blocking call at a time, and each network
// call is attempted exactly once.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(loader, odooClient, wcClient, log, reconcile.Options{})
//	report, err := engine.Run(ctx)
//	if err != nil {
//	    // connection failure: exit 1
//	}
//	fmt.Println(report.Summary.TotalUpdated, report.Summary.TotalErrors)
package reconcile
