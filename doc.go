// Package marking runs a cooperative exam marking session.
//
// A number of assistants share one working set: the rubric, the current
// exam and its per question marking flags. They review the rubric, claim and
// mark questions, advance through the exam sequence and agree on when to
// stop, coordinating through three binary lock domains.
//
// Typical use:
//
//	config := marking.DefaultConfig()
//	config.Workers = 3
//	srv := marking.New(marking.WithConfig(config), marking.WithOutput(os.Stdout))
//	report, err := srv.Run(ctx)
//
// Setting Config.Unsynchronized replaces every lock with a no-op, producing
// the race artifacts the synchronized run prevents.
package marking
