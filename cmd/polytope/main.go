// Command polytope builds, transforms and inspects polytopes.
//
//	polytope build --cd "x4o3o" --format off > cube.off
//	polytope dual --in cube.off --format yaml
//	polytope info --in cube.off
//	polytope mesh --in cube.off --format json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "polytope:", err)
		stop()
		os.Exit(1)
	}
}
