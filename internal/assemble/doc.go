// Package assemble turns repository state into the context document sent to
// a completion provider.
//
// An [Assembler] is bound 1:1 to one workspace root and owns the ignore
// evaluator behind its access filter; switching roots means closing the old
// assembler and constructing a new one. [Assembler.Assemble] parses status
// output into [Change] records and [Assembler.BuildContext] renders the four
// context sections (diff, stats, branch, recent commits). Both degrade to
// empty or placeholder output instead of failing the workflow; degraded
// sections are reported as [Diagnostic] values on the returned [Document].
package assemble
