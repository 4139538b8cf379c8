package main

import (
	"fmt"
	"runtime"
	"sort"
)

// compiledFeatures lists build-time feature flags registered from init()
// functions. No file in this package registers one, so printFeatures
// reports "(none)".
var compiledFeatures []string

func printFeatures() {
	fmt.Printf("pcxt88 %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("Compiled features:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}
