package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/placeholders"
)

func main() {
	root := flag.String("assets", ".", "directory to write graphics/ into")
	force := flag.Bool("force", false, "overwrite existing images")
	flag.Parse()

	fmt.Println("Cat Town Placeholder Graphics Generator")
	fmt.Println("=======================================")

	n, err := placeholders.Generate(*root, assets.Manifest(), *force)
	fmt.Printf("Wrote %d placeholder images\n", n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
