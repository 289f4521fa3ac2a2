// Package datascribe is a keyword-driven business question answerer.
//
// A question is classified into an analysis category (classifier), the
// matching canned answer is taken from the catalog (catalog), and derived
// findings about regions, trends and anomalies come from the insight
// engine (insight) running over the embedded datasets (dataset). The
// assistant package ties these together; server and cmd/datascribe expose
// it over HTTP and the command line.
//
// Quick start:
//
//	cat, err := catalog.Default()
//	if err != nil { ... }
//	a := assistant.New(cat, assistant.WithDelay(0))
//	bundle, err := a.Process(ctx, "what's our sales trend?")
package datascribe

// Version is the release version reported by the server and CLI.
const Version = "0.3.0"
