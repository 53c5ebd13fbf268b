// Package callback implements the loopback HTTP listener that receives the
// identity provider's redirect during a desktop sign-in.
//
// The listener binds the first free port of a fixed range on the loopback
// interface and serves two routes:
//
//	GET /callback          static landing page; its script forwards the
//	                       provider parameters to the result route
//	GET /callback/result   ?id_token=<token> or ?error=<message>
//
// The result route settles a rendezvous.Cell with an Outcome. Only the first
// resolving request has an effect; duplicates and malformed requests still get
// a 200 "OK" so the landing page never shows a transport error.
//
// The serving goroutine never stops on its own. Callers stop it with
// Listener.Stop or by cancelling the context passed to Start.
package callback
