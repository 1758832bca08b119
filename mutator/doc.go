// Package mutator evolves schema trees through synthetic version histories.
//
// An Engine applies one operator per version step, drawn from a weighted
// catalog of structural, constraint, and semantic mutations. Each operator
// declares a viability precondition and is only sampled when it holds, so a
// flat three-field schema is never asked to unnest an object it does not
// have. Operators not yet used in a run are preferred, which pushes long
// runs toward full catalog coverage.
//
// Runs are reproducible. Seed the engine and the whole version chain,
// including every random name, bound, and enum value, comes out identical:
//
//	eng, err := mutator.New(mutator.WithSeed(42), mutator.WithVersions(6))
//	if err != nil {
//		return err
//	}
//	result, err := eng.Run(root)
//	if err != nil {
//		return err
//	}
//	fmt.Print(result.ChangeLog())
//
// The input schema is never modified; every version in the result holds its
// own deep copy.
package mutator
