// Package trello provides a typed, resilient client for the Trello
// REST API: boards, lists and cards.
//
// Every request flows through the shared transport and resilience
// chain, so pacing, retries and error classification behave the same
// as the other upstream clients. Card writes follow Trello's query
// parameter convention rather than JSON bodies, and card listings page
// with a limit plus before-cursor scheme.
//
// Card creation can be verified with AwaitCardVisible, which re-polls
// the list's cards until the new card shows up or the wait budget is
// exhausted.
package trello
