// Package layout assigns deterministic 2-D positions to process-flow
// graphs for orthogonal diagram rendering.
//
// The engine treats an arbitrary directed graph - decision branches, loops
// with back-edges, goto jumps - as a tree for positioning purposes. Four
// cooperating pieces make that work:
//
//   - [FindMerge] detects where divergent branches recombine, without any
//     pre-existing tree structure, by intersecting per-branch BFS
//     reachability.
//   - [Depth] and [Width] measure the rows and columns a subtree occupies,
//     bounded by an explicit traversal boundary (the stop node) instead of
//     banning cycles.
//   - [AllocateFaultLanes] packs error-path edges into conflict-free
//     vertical lanes using greedy interval coloring, so parallel error
//     paths never cross.
//   - [Compute] orchestrates the recursive placement pass and appends
//     disconnected nodes below the main content.
//
// The whole computation is a pure, single-threaded function of
// (graph, config): no I/O, no shared mutable state between calls, no
// failure mode. Malformed input degrades to a partial, renderable layout;
// the viewer this engine serves must draw something even for broken flows.
package layout
