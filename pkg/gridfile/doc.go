// Package gridfile reads and writes grid documents. Decoding goes through
// gopkg.in/yaml.v3 node trees rather than native maps so the declaration order
// of keys survives and drives the order in which combinations are produced.
// JSON documents are YAML documents too and decode the same way.
//
// A document whose root is a mapping describes one grid. A root sequence of
// mappings describes a grid set whose combinations are concatenated.
package gridfile
