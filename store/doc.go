// Package store loads the two on-disk artifacts of a prebuilt proximity
// graph: the payload file (the corpus vectors) and the graph metadata file
// (CSR adjacency plus entry point). Both are immutable after load and safe
// for concurrent readers without synchronization.
//
// Uncompressed files are memory-mapped and parsed zero-copy; files with a
// .zst or .lz4 suffix are decompressed into 64-byte-aligned buffers so the
// alignment contract of the distance kernel holds either way.
package store
