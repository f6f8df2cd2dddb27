// Package trace provides the tracing subsystem of the nx front-end.
//
// Tracing records pass boundaries (lex, parse), per-file work in directory
// mode and, at the most verbose level, parser state transitions.
//
// # Usage
//
//	nx parse --trace=- --trace-level=phase main.nx
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events in memory; the CLI writes them out
//     when a command fails
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including parser states
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse")
//	defer span.End("")
//
// Code that only gets a tracer and a parent ID (the lexer and the parser)
// uses Begin directly:
//
//	span := trace.Begin(opts.Tracer, trace.ScopePass, "lex", opts.ParentSpan)
//	span.SetInt("tokens", n).End("")
package trace
