// Package metadata handles document front matter: YAML parsing,
// canonical serialization, change detection, and schema validation.
//
// ARCHITECTURE
//
// Metadata never participates in tree alignment. Change detection is
// wholesale: the two metadata maps are serialized to canonical JSON
// (RFC 8785 key ordering, NFC-normalized strings) and compared as
// bytes. If they differ at all, the transformed metadata replaces the
// original in its entirety.
//
// Canonical bytes also feed the run log's metadata digest, so the
// encoding must be byte-stable across processes and platforms.
//
// CRITICAL PATTERNS
//
//  1. Object keys sort by UTF-16 code units, not UTF-8 bytes. The two
//     orders differ outside the BMP.
//  2. Strings NFC-normalize at the serialization boundary.
//  3. No HTML escaping: <, > and & pass through per RFC 8785.
//  4. Unlike strict content-address encodings, front matter admits
//     null and floats; floats serialize via shortest round-trip form.
package metadata
