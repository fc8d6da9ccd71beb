package main

import (
	"log"
)

// collects required-value checks during startup validation so that all
// configuration problems are reported before the service exits

type stringValidator struct {
	invalid bool
}

func (v *stringValidator) requireValue(value string, label string) {
	if value == "" {
		log.Printf("[VALIDATE] missing %s", label)
		v.invalid = true
	}
}

func (v *stringValidator) Invalid() bool {
	return v.invalid
}
