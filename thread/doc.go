// Package thread provides Thread, an owning handle over one native OS thread.
//
// A Thread is started from a unit of work (Func) built by one of the binders:
//
//   - Bind, Bind1, Bind2, Bind3 for plain functions and closures
//   - Method, Method1, Method2 for method expressions bound to a receiver
//   - Functor for values implementing Runner
//
// The work runs on a goroutine locked to its own OS thread for its whole
// lifetime. The lock is never released, so the OS thread terminates together
// with the goroutine instead of returning to the runtime's scheduler.
//
// Ownership
//
// A live Thread must be relinquished explicitly with Join or Detach. Releasing
// (or garbage collecting) a Thread that is still joinable aborts the process:
// the work may still be reading state captured by reference, and silently
// detaching would hide that.
//
// Threads are not safe for concurrent use by multiple owners. Move and MoveFrom
// transfer ownership between Thread values.
package thread
