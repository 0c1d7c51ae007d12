package main

import (
	"testing"

	"github.com/roadscore/roadscore/internal/app"
	_ "github.com/roadscore/roadscore/internal/testing/guard"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	if !app.InTestMode() {
		t.Fatal("guard must enable test mode")
	}
	main()
}
