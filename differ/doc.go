/*
Package differ reconstructs a minimal structural-operation sequence relating
two schema snapshots, including heuristic identification of renamed and moved
fields via tree alignment and similarity scoring.

# Overview

Given any two snapshots of a schema tree, the engine flattens both into
path-indexed views, aligns their path sets, and emits one ordered operation
log drawn from a fixed vocabulary:

  - Structural: AddField, DropField, RenameField, MoveField
  - Type: ChangeType, ToArray, ToScalar
  - Constraint: AddRequired, DropRequired, AddRange, ModifyRange, DropRange,
    AddEnum, ModifyEnum, DropEnum, AddPattern, ModifyPattern

The same vocabulary is used to describe mutation-engine steps, so diff
output serves as a benchmark oracle, a test fixture generator, or
documentation input for downstream tooling. Operations serialize to JSON
with an "op" discriminator.

# Rename and move detection

Removed and added paths are paired by a similarity score over derived node
signatures (declared kind, child-key overlap, enum and items presence, item
kind). Pairs at or above the 0.6 threshold are accepted greedily in
descending score order with a deterministic tie-break, so repeated diffs of
identical inputs are byte-identical. A pair whose parent and leaf name both
changed emits both a MoveField and a RenameField plus a [Warning]; the diff
never fails, degrading at worst to plain drops and adds.

# Usage

	result, err := differ.DiffWithOptions(
	    differ.WithSourceBytes(oldDoc),
	    differ.WithTargetBytes(newDoc),
	)
	if err != nil {
	    log.Fatal(err)
	}
	for _, op := range result.Operations {
	    fmt.Println(op.String())
	}

Diffing a snapshot against its own deep copy yields an empty operation list.
*/
package differ
