package main

import "testing"

func TestRunVectorsAllPass(t *testing.T) {
	for _, r := range runVectors() {
		if r.err != nil {
			t.Errorf("%s: %v", r.name, r.err)
		}
	}
}
