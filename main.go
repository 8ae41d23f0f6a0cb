package main

import (
	"github.com/mj1618/win-ctrl/cmd"

	_ "github.com/mj1618/win-ctrl/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
