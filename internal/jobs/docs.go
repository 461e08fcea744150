// Package jobs provides the background tasks of the dispatch service.
//
// # Tasks
//
//  1. DispatchWorker - long-running consumer of the order stream. It reads
//     new entries through the consumer group and assigns each announced
//     order to a courier.
//  2. ReclaimJob - cron job taking over entries left pending longer than
//     the idle threshold (deferred entries, crashed consumers) and running
//     them through the same per-entry decision.
//  3. GaugeJob - cron job refreshing the active orders and couriers gauges.
//
// # Per-entry decision
//
// EntryProcessor acknowledges an entry when its outcome is final: the order
// was assigned, the order is gone or no longer NEW, or the entry is poison
// (missing or malformed order id). When no courier can take the order the
// entry stays pending and is redelivered by ReclaimJob. Infrastructure
// failures stop the batch; the worker backs off and resumes.
//
// # Usage
//
//	processor := jobs.NewEntryProcessor(stream, dispatchHandler, metrics, logger)
//	worker := jobs.NewDispatchWorker(stream, processor, time.Second, logger)
//	manager := jobs.NewJobManager(logger,
//		jobs.NewReclaimJob(stream, processor, 5*time.Second, logger),
//		jobs.NewGaugeJob(kpiHandler, metrics, 10*time.Second, logger),
//	)
//
//	if err := manager.StartAll(ctx); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
//	return worker.Run(ctx)
package jobs
