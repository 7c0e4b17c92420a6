package main

import (
	"context"
	"fmt"
	"os"

	httpapi "variantsudoku/internal/transport/http"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: solve <puzzle.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	engine, err := httpapi.CompileFile(data)
	if err != nil {
		fmt.Printf("build error: %v\n", err)
		os.Exit(1)
	}

	sol, found, err := engine.NthSolution(context.Background(), 0)
	if err != nil {
		fmt.Printf("search error: %v\n", err)
		os.Exit(1)
	}
	if !found {
		fmt.Println("no solution")
		os.Exit(1)
	}
	fmt.Println(sol.Short())
}
