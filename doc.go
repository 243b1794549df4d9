// Package includes answers membership questions with same-value-zero
// equality: a value is found when it is == to an element, or when both are
// NaN. slices.Contains cannot find NaN; Contains can.
//
// Every lookup accepts a start offset. A non-negative offset is clamped to
// the length of the sequence; a negative offset counts back from the end
// and is clamped to zero.
//
// # Typed lookups
//
// For Go slices use the generic functions:
//
//	includes.Contains([]float64{1, math.NaN()}, math.NaN())  // true
//	includes.ContainsFrom([]int{1, 2, 3}, 1, -1)             // false, scan starts at index 2
//	includes.IndexFrom([]string{"a", "b", "a"}, "a", 1)      // 2
//
// Types that are not slices can implement [Sequence] and use
// [ContainsSeq], which reports [ErrInvalidReceiver] for a nil sequence.
//
// # Loosely typed lookups
//
// [Finder] accepts any receiver: slices, arrays, strings, maps carrying a
// "length" key, and [AnySequence] values. Lengths and start offsets are
// coerced rather than rejected unless the Finder is strict:
//
//	found, err := includes.Includes([]any{1, 2, "3"}, 2.0)       // true, numbers compare by value
//	found, err = includes.Includes(map[string]any{"length": 2}, includes.Undefined) // true, holes are Undefined
//	found, err = includes.Includes(nil, 1)                          // ErrInvalidReceiver
//
//	strict, _ := includes.NewFinder(includes.WithStrict(true))
//	_, err = strict.Includes([]int{1}, 1, "x")                      // ErrInvalidStartIndex
//
// # Query documents
//
// [Load] decodes JSON or YAML query documents, optionally zstd-compressed
// and verified against a digest, and [Evaluate] answers them concurrently:
//
//	doc, err := includes.Load(f, includes.LoadWithDigest(want))
//	if err != nil {
//	    return err
//	}
//	results, err := includes.Evaluate(ctx, nil, doc.Queries,
//	    includes.EvaluateWithWorkers(4),
//	)
package includes
