//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// pcxt88 is only built for the little-endian architectures listed in
// le_check.go; on any other target this declaration fails to compile.
var _ = "pcxt88 requires a little-endian architecture" + 1
