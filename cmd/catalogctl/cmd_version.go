package main

import (
	"fmt"

	"github.com/ruchirachamara/assessment/internal/version"
)

func runVersion(_ []string) {
	fmt.Println(version.Info())
}
