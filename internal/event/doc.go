/*
Package event provides the pub/sub event system used to observe a single
prompts run.

A Bus is created once per CLI invocation and stamped with the run's ULID.
Components publish lifecycle events on it. Every event is delivered to direct
subscribers and mirrored as a JSON payload on a watermill GoChannel topic.
The CLI traces events at debug level by consuming that topic with Consume;
Messages exposes the raw watermill stream.

# Event Types

  - run.started: a command was selected together with its action and files
  - prompt.assembled: the prompt text is ready; lists fragments that came out empty
  - process.started: the external assistant was spawned
  - process.exited: the external assistant exited (or failed to start)
  - instructions.changed: an instruction file changed while watching

# Delivery

Publish calls each subscriber in its own goroutine. PublishSync calls them in
order on the caller's goroutine. Both return only after every watermill
subscriber has acked the mirrored message. A nil *Bus accepts publishes and
drops them.
*/
package event
