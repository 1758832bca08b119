/*
Package schema provides the canonical in-memory representation of a JSON/BSON
schema tree for the evoschema engines.

# Overview

A schema document in the minimal dialect (type/bsonType, properties, required,
items, enum, minimum, maximum, pattern, format, minItems, maxItems,
uniqueItems) is modeled as a tree of [Node] values. Each node is one of three
shapes:

  - Object: an ordered mapping of field name to child node, plus a set of
    required field names
  - Array: exactly one item node, plus optional item-count constraints
  - Scalar: a primitive kind (string, integer, number, boolean) with optional
    enum, range, pattern, and format constraints

# Paths

Nodes are addressed by string paths from the root: "." descends into an
object field and "[]" descends into an array's item node. For example,
"reactions.tags[]" addresses the item node of the array field "tags" inside
the object field "reactions". [Node.Flatten] derives a [FlatIndex] mapping
every path to its node; the index is rebuilt on demand and never persisted.

# Construction

Trees are built from a parsed document mapping with [FromMap], or directly
from YAML/JSON bytes with [Parse] (JSON documents parse through the YAML
reader, which preserves the document's property order). Documents that
violate the dialect's structural assumptions (for example "properties" that
is not a mapping) surface a *evoerrors.MalformedInputError; unresolved
required names are tolerated, not rejected, because mutations can transiently
produce such states.

# Immutability convention

The engines in the differ and mutator packages never mutate a caller's tree:
every evolution step deep-copies its input via [Node.DeepCopy] before
applying changes, and emitted snapshots are treated as immutable from then
on. [Node.Fingerprint] returns a stable content hash usable as a snapshot
identity.
*/
package schema
