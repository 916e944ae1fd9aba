/*
Package mcdgen drives a vendor motion-controller configuration toolkit to
produce calculated machine controller definition (MCD) files from JSON
stage specifications or from existing MCD files.

The module has no algorithmic core of its own: parameter calculation, unit
conversion, and machine-model validation all happen inside the vendor
engine. mcdgen's job is to find the installed runtime, assemble the input
document, sequence the vendor calls, and scrape the calculated servo-loop
and feedforward parameters back out.

# Architecture

The vendor engine is consumed through the narrow ports.Toolkit interface
(parse, convert-to-MCD, convert-to-JSON, calculate). The production
binding (pkg/adapters/bridge) runs the engine out of process behind a
stdio protocol; pkg/adapters/memory is a drop-in double for tests and
offline runs. Everything above the port is plain file plumbing.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/mcdgen"
		"github.com/aretw0/mcdgen/pkg/domain"
	)

	func main() {
		sess, err := mcdgen.New(mcdgen.WithAssetsDir("./assets"))
		if err != nil {
			log.Fatal(err)
		}
		defer sess.Close()

		ctx := context.Background()
		if err := sess.Initialize(ctx); err != nil {
			log.Fatal(err)
		}

		// JSON specs -> calculated MCD
		calculated, warnings, path, err := sess.Calculate(ctx, domain.StageSpec{
			StageType: "XY-500",
			Axis:      "X",
			Options:   map[string]any{"Travel": "500mm"},
		})
		if err != nil {
			log.Fatal(err)
		}
		for _, w := range warnings {
			log.Println("warning:", w)
		}
		log.Println("wrote", path)

		// Scrape the calculated tuning values.
		servo, feedforward, _ := sess.InspectParameters(calculated)
		_ = servo
		_ = feedforward
	}
*/
package mcdgen
