package main

import (
	"os"

	"github.com/jroosing/zoneinv/internal/ctl"
)

func main() {
	os.Exit(ctl.Main(os.Args))
}
